// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package ingest reads the TMDB movies and credits CSV files into catalog
// records using an in-memory DuckDB instance. Every column is read as text
// so that malformed numeric cells surface as missing values instead of
// aborting the load.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ErrMissingColumn is returned when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Extension autoloading would try the network on first use.
const dsn = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

var (
	movieRequired  = []string{"id", "title"}
	movieOptional  = []string{"overview", "release_date", "genres", "keywords", "vote_average", "vote_count", "popularity", "runtime"}
	creditRequired = []string{"movie_id"}
	creditOptional = []string{"cast", "crew"}
)

// Reader loads CSV files through DuckDB.
type Reader struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open starts an in-memory DuckDB instance.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, logger zerolog.Logger) (*Reader, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &Reader{db: db, logger: logger.With().Str("component", "ingest").Logger()}, nil
}

// Close releases the DuckDB instance.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Movies reads the movies file. Rows whose id is not an integer are
// skipped. File order is preserved.
func (r *Reader) Movies(ctx context.Context, path string) ([]catalog.Record, error) {
	cols, err := r.selectList(ctx, path, movieRequired, movieOptional)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+cols+" FROM "+source(path))
	if err != nil {
		return nil, fmt.Errorf("query movies %s: %w", path, err)
	}
	defer rows.Close()

	var (
		out     []catalog.Record
		skipped int
	)
	for rows.Next() {
		var id, title, overview, release, genres, keywords, voteAvg, voteCount, popularity, runtime sql.NullString
		if err := rows.Scan(&id, &title, &overview, &release, &genres, &keywords, &voteAvg, &voteCount, &popularity, &runtime); err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movieID, ok := parseID(id)
		if !ok {
			skipped++
			continue
		}
		out = append(out, catalog.Record{
			ID:          movieID,
			Title:       strings.TrimSpace(title.String),
			Overview:    overview.String,
			ReleaseDate: release.String,
			Genres:      genres.String,
			Keywords:    keywords.String,
			VoteAverage: parseFloat(voteAvg),
			VoteCount:   parseFloat(voteCount),
			Popularity:  parseFloat(popularity),
			Runtime:     parseFloat(runtime),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read movies %s: %w", path, err)
	}

	event := r.logger.Info()
	if skipped > 0 {
		event = r.logger.Warn()
	}
	event.Str("path", path).Int("rows", len(out)).Int("skipped", skipped).Msg("Loaded movies")
	return out, nil
}

// Credits reads the credits file. Rows whose movie_id is not an integer
// are skipped.
func (r *Reader) Credits(ctx context.Context, path string) ([]catalog.Credits, error) {
	cols, err := r.selectList(ctx, path, creditRequired, creditOptional)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+cols+" FROM "+source(path))
	if err != nil {
		return nil, fmt.Errorf("query credits %s: %w", path, err)
	}
	defer rows.Close()

	var (
		out     []catalog.Credits
		skipped int
	)
	for rows.Next() {
		var id, cast, crew sql.NullString
		if err := rows.Scan(&id, &cast, &crew); err != nil {
			return nil, fmt.Errorf("scan credits row: %w", err)
		}
		movieID, ok := parseID(id)
		if !ok {
			skipped++
			continue
		}
		out = append(out, catalog.Credits{MovieID: movieID, Cast: cast.String, Crew: crew.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read credits %s: %w", path, err)
	}

	r.logger.Info().Str("path", path).Int("rows", len(out)).Int("skipped", skipped).Msg("Loaded credits")
	return out, nil
}

// selectList checks the file header and returns a select list with the
// required columns followed by the optional ones, using NULL for optional
// columns the file lacks.
func (r *Reader) selectList(ctx context.Context, path string, required, optional []string) (string, error) {
	rows, err := r.db.QueryContext(ctx, "DESCRIBE SELECT * FROM "+source(path))
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", path, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", path, err)
	}
	dest := make([]any, len(colTypes))
	for rows.Next() {
		var name sql.NullString
		dest[0] = &name
		for i := 1; i < len(dest); i++ {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return "", fmt.Errorf("describe %s: %w", path, err)
		}
		present[strings.ToLower(name.String)] = true
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("describe %s: %w", path, err)
	}

	exprs := make([]string, 0, len(required)+len(optional))
	for _, col := range required {
		if !present[col] {
			return "", fmt.Errorf("%w %q in %s", ErrMissingColumn, col, path)
		}
		exprs = append(exprs, quoteIdent(col))
	}
	for _, col := range optional {
		if present[col] {
			exprs = append(exprs, quoteIdent(col))
		} else {
			r.logger.Warn().Str("path", path).Str("column", col).Msg("Optional column missing, treating as empty")
			exprs = append(exprs, "NULL AS "+quoteIdent(col))
		}
	}
	return strings.Join(exprs, ", "), nil
}

func source(path string) string {
	return fmt.Sprintf("read_csv(%s, header = true, all_varchar = true, quote = '\"', escape = '\"')", quoteLiteral(path))
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func parseID(s sql.NullString) (int64, bool) {
	if !s.Valid {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(s.String), 10, 64)
	return id, err == nil
}

func parseFloat(s sql.NullString) *float64 {
	if !s.Valid {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.String), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
