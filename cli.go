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

package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/csvimport"
	"github.com/google/tablekit/core/rendering"
	"github.com/google/tablekit/core/server"
	"github.com/google/tablekit/core/views"
	"github.com/google/tablekit/demo"
)

// newRootCmd creates the root command. Flags set on the command line override
// the config file, which overrides the defaults.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tablekit",
		Short:         "Serve CSV data as a sortable, paginated HTML table",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Serve the demo client list on :8097
  tablekit serve

  # Serve a CSV file with 25 rows per page
  tablekit serve --csv invoices.csv --size 25

  # Print the third page sorted by age, oldest first
  tablekit render --page 3 --sort years --mode desc`,
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("csv", "", "CSV file to serve instead of the demo data")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newServeCmd(), newRenderCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if size, _ := cmd.Flags().GetInt("size"); size > 0 {
				cfg.Pagination.PageSize = size
			}

			logger := newLogger(cmd, cfg)
			srv, err := newServer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	cmd.Flags().Int("size", 0, "rows per page (overrides config)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		page    int
		size    int
		sortBy  string
		mode    string
		format  string
		example bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write one page of the table to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if example {
				return renderExample(out)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			srv, err := newServer(cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}

			path := "/"
			handle := srv.HandleTableRequest
			switch format {
			case "html":
			case "json":
				path = "/table.json"
				handle = srv.HandleExportRequest
			case "text":
				path = "/table.txt"
				handle = srv.HandleTextRequest
			default:
				return fmt.Errorf("unknown format %q, want html, json or text", format)
			}

			params := url.Values{}
			params.Set("page", strconv.Itoa(page))
			if size > 0 {
				params.Set("size", strconv.Itoa(size))
			}
			if sortBy != "" {
				params.Set("sort", sortBy)
				params.Set("mode", mode)
			}
			u := &url.URL{Path: path, RawQuery: params.Encode()}

			if result := handle(out, u, func(string, string) {}); result != nil {
				if result.Message != "" {
					return fmt.Errorf("%s", result.Message)
				}
				return result.Error
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to render")
	cmd.Flags().IntVar(&size, "size", 0, "rows per page (0 uses the config)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "column to sort by")
	cmd.Flags().StringVar(&mode, "mode", "asc", "sort direction: asc or desc")
	cmd.Flags().StringVar(&format, "format", "html", "output format: html, json or text")
	cmd.Flags().BoolVar(&example, "example", false, "render the two-row example table")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if csv, _ := cmd.Flags().GetString("csv"); csv != "" {
		cfg.Data.CSV = csv
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return config.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
}

func newServer(cfg *config.Config, logger zerolog.Logger) (*server.Server, error) {
	records, err := loadRecords(cfg.Data)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("csv", cfg.Data.CSV).Int("records", records.Len()).Msg("loaded records")
	return server.NewServer(cfg, records, logger)
}

func loadRecords(data config.DataConfig) (*csvimport.Records, error) {
	if data.CSV == "" {
		return demo.Clients()
	}
	options := csvimport.DefaultOptions()
	options.Delimiter = data.DelimiterRune()
	return csvimport.ImportFromFile(data.CSV, options)
}

func renderExample(w io.Writer) error {
	t, err := demo.ExampleTable()
	if err != nil {
		return err
	}
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return err
	}
	return renderer.RenderTable(w, views.BuildTableViewModel(t, nil))
}

