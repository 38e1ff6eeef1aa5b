/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tablekit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server serves a CSV data source as a sortable, paginated HTML table
// and as JSON.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/csvimport"
	"github.com/google/tablekit/core/export"
	"github.com/google/tablekit/core/pagination"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/rendering"
	"github.com/google/tablekit/core/tables"
	"github.com/google/tablekit/core/views"
)

// Server represents the application server with all its dependencies
type Server struct {
	cfg      *config.Config
	records  *csvimport.Records
	renderer *rendering.TableRenderer
	language language.Tag
	logger   zerolog.Logger
}

// NewServer creates a new server serving records
func NewServer(cfg *config.Config, records *csvimport.Records, logger zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	tag := language.English
	if cfg.Pagination.Language != "" {
		tag, err = language.Parse(cfg.Pagination.Language)
		if err != nil {
			return nil, fmt.Errorf("invalid pagination language %q: %w", cfg.Pagination.Language, err)
		}
	}

	return &Server{
		cfg:      cfg,
		records:  records,
		renderer: renderer,
		language: tag,
		logger:   logger.With().Str("component", "server").Logger(),
	}, nil
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingEntry is one measured step of a request.
type TimingEntry struct {
	Operation string
	Duration  time.Duration
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, TimingEntry{Operation: operation, Duration: duration})
}

// Total returns the time elapsed since the collector was created
func (tc *TimingCollector) Total() time.Duration {
	return time.Since(tc.start)
}

// Dict returns the entries as a zerolog dictionary.
func (tc *TimingCollector) Dict() *zerolog.Event {
	d := zerolog.Dict()
	for _, e := range tc.entries {
		d = d.Dur(e.Operation, e.Duration)
	}
	return d.Dur("total", tc.Total())
}

// page holds one request's table and paginator.
type page struct {
	query     *query.Query
	table     *tables.Table
	paginator *pagination.Paginator
}

// buildPage sorts and slices the records for q and lays the visible slice
// out as a table. Table and Paginator are built fresh for every request.
func (s *Server) buildPage(requestURL *url.URL, timing *TimingCollector) (*page, *TableHandlerResult) {
	parseStart := time.Now()
	q := query.NewQueryWithPageSize(requestURL, s.cfg.Pagination.PageSize)
	timing.Record("parse_query", time.Since(parseStart))

	if err := q.Validate(); err != nil {
		return nil, &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error(), Error: err}
	}
	if !s.cfg.Table.Sortable {
		q.Sort = ""
	}

	records := s.records
	if q.Sort != "" {
		sortStart := time.Now()
		sorted, err := records.Sort(q.Sort, q.Mode)
		if err != nil {
			if errors.Is(err, csvimport.ErrNoColumn) {
				return nil, &TableHandlerResult{
					StatusCode: http.StatusBadRequest,
					Message:    fmt.Sprintf("Column '%s' not found", q.Sort),
					Error:      err,
				}
			}
			return nil, &TableHandlerResult{StatusCode: http.StatusInternalServerError, Error: err}
		}
		records = sorted
		timing.Record("sort", time.Since(sortStart))
	}

	p, err := pagination.New(q.Page, records.Len(), q.PageSize,
		pagination.WithMaxVisiblePages(s.cfg.Pagination.MaxVisiblePages),
		pagination.WithClass(s.cfg.Pagination.Class),
	)
	if err != nil {
		return nil, &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error(), Error: err}
	}

	buildStart := time.Now()
	lo, hi := p.Slice(records.Len())
	t, err := BuildTable(records.Slice(lo, hi), s.cfg.Table, q, lo, records.Len())
	if err != nil {
		return nil, &TableHandlerResult{StatusCode: http.StatusInternalServerError, Error: err}
	}
	timing.Record("build_table", time.Since(buildStart))

	return &page{query: q, table: t, paginator: p}, nil
}

// HandleTableRequest processes a table request and writes the response
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	pg, result := s.buildPage(requestURL, timing)
	if result != nil {
		return result
	}

	vmStart := time.Now()
	vm := views.PageViewModel{
		Title:      s.cfg.Table.Title,
		Table:      views.BuildTableViewModel(pg.table, pg.query),
		Pagination: views.BuildPaginationViewModelForLanguage(pg.paginator, pg.query, s.language),
	}
	timing.Record("build_view_model", time.Since(vmStart))

	// Render into a buffer so a template failure can still become a 500.
	renderStart := time.Now()
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, vm); err != nil {
		return &TableHandlerResult{StatusCode: http.StatusInternalServerError, Error: fmt.Errorf("failed to render page: %w", err)}
	}
	timing.Record("render", time.Since(renderStart))

	setHeader("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &TableHandlerResult{Error: err}
	}

	s.logger.Debug().
		Int("page", pg.paginator.CurrentPage()).
		Int("page_count", pg.paginator.PageCount()).
		Dict("timing", timing.Dict()).
		Msg("rendered table page")
	return nil
}

// HandleExportRequest writes the JSON export of the page a table request
// would render. A "pretty" query parameter indents the output.
func (s *Server) HandleExportRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	pg, result := s.buildPage(requestURL, timing)
	if result != nil {
		return result
	}

	st, err := export.Page(pg.table, pg.paginator)
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusInternalServerError, Error: fmt.Errorf("failed to export page: %w", err)}
	}
	data, err := export.MarshalJSON(st, requestURL.Query().Has("pretty"))
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusInternalServerError, Error: err}
	}

	setHeader("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		return &TableHandlerResult{Error: err}
	}
	s.logger.Debug().Dict("timing", timing.Dict()).Msg("exported table page")
	return nil
}

// HandleTextRequest writes the page as an ASCII table followed by the
// pagination summary.
func (s *Server) HandleTextRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	pg, result := s.buildPage(requestURL, timing)
	if result != nil {
		return result
	}

	pager := views.BuildPaginationViewModelForLanguage(pg.paginator, pg.query, s.language)
	setHeader("Content-Type", "text/plain; charset=utf-8")
	if err := s.renderer.RenderASCII(w, views.BuildTableViewModel(pg.table, pg.query)); err != nil {
		return &TableHandlerResult{Error: err}
	}
	if _, err := fmt.Fprintf(w, "%s (page %d of %d)\n", pager.Summary, pg.paginator.CurrentPage(), pg.paginator.PageCount()); err != nil {
		return &TableHandlerResult{Error: err}
	}
	return nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serve(s.HandleTableRequest))
	mux.HandleFunc("GET /table.json", s.serve(s.HandleExportRequest))
	mux.HandleFunc("GET /table.txt", s.serve(s.HandleTextRequest))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	return mux
}

type requestHandler func(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult

func (s *Server) serve(h requestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := h(w, r.URL, w.Header().Set)
		if result == nil {
			return
		}
		switch {
		case result.StatusCode >= http.StatusInternalServerError:
			s.logger.Error().Err(result.Error).Str("url", r.URL.String()).Msg("request failed")
			http.Error(w, http.StatusText(result.StatusCode), result.StatusCode)
		case result.StatusCode != 0:
			s.logger.Info().Err(result.Error).Str("url", r.URL.String()).Int("status", result.StatusCode).Msg("rejected request")
			http.Error(w, result.Message, result.StatusCode)
		default:
			// The response is already partially written.
			s.logger.Warn().Err(result.Error).Str("url", r.URL.String()).Msg("failed to write response")
		}
	}
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Int("records", s.records.Len()).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}
