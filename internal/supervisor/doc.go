// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for the recommendation
server using suture v4.

# Overview

	RootSupervisor ("cinematch")
	├── CacheSupervisor ("cache-layer")
	│   └── PosterWarmService (when poster.warm_count > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's decaying failure counter and
backoff. Cancelling the Serve context stops every service in order, each
bounded by TreeConfig.ShutdownTimeout.

Supervisor events are logged through a *slog.Logger via sutureslog; the
server bridges it to zerolog with logging.NewSlogLogger.

# What Is NOT Supervised

The similarity bundle is loaded once before the tree starts and is
immutable afterwards. A failed load is fatal, not restartable.

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
