// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVHeader returns the export header for a mode.
func CSVHeader(mode Mode) []string {
	header := []string{"title", "vote_average", "vote_count", mode.ScoreColumn(), "genres"}
	if mode == ModeHybrid {
		header = append(header, "content_score", "personalized_score", "popularity_score")
	}
	return header
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the ranked items of res as CSV with a header row.
// Genres are joined with "|".
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(res.Mode)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range res.Items {
		it := &res.Items[i]
		record := []string{
			it.Item.Title,
			formatFloat(it.Item.VoteAverage),
			formatFloat(it.Item.VoteCount),
			formatFloat(it.Score),
			strings.Join(it.Item.Genres, "|"),
		}
		if res.Mode == ModeHybrid {
			var c Components
			if it.Components != nil {
				c = *it.Components
			}
			record = append(record, formatFloat(c.Content), formatFloat(c.Personalized), formatFloat(c.Popularity))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename returns the download filename for a result, derived from
// its first seed.
func ExportFilename(res *Result) string {
	name := "recommendations"
	if len(res.Seeds) > 0 {
		name += "_" + strings.Join(strings.Fields(res.Seeds[0]), "_")
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + ".csv"
}
