package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/schedule-cli/internal/config"
	"github.com/sells-group/schedule-cli/internal/directory"
	"github.com/sells-group/schedule-cli/internal/document"
	"github.com/sells-group/schedule-cli/internal/model"
	"github.com/sells-group/schedule-cli/internal/schedule"
	"github.com/sells-group/schedule-cli/internal/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Recover project schedules from master schedule documents",
	Long:  "Parses PDF (via pdftotext -bbox), workbook, or JSON page dumps. Each document is parsed independently; results are written as JSON and stored in the run history.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := applyParseFlags(cmd); err != nil {
			return err
		}
		if err := cfg.Validate("parse"); err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		outDir, _ := cmd.Flags().GetString("out-dir")
		if out != "" && len(args) > 1 {
			return eris.New("parse: --out takes a single document; use --out-dir")
		}

		nowFlag, _ := cmd.Flags().GetString("now")
		clock, err := clockFor(nowFlag)
		if err != nil {
			return err
		}

		opts, err := parserOptions(cfg.Parse, clock, zap.L())
		if err != nil {
			return err
		}

		var dir *directory.Directory
		if cfg.Directory.Path != "" {
			if dir, err = directory.Load(cfg.Directory.Path, cfg.Directory.Sheet); err != nil {
				return err
			}
			zap.L().Info("loaded customer directory", zap.Int("customers", dir.Len()))
		}

		var st store.Store
		if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
			if st, err = initStore(ctx); err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		results, err := parseDocuments(ctx, args, concurrency, func(ctx context.Context, path string) (*model.ParseResult, error) {
			return parseDocument(ctx, cfg.Source, schedule.NewParser(opts...), dir, path)
		})
		if err != nil {
			return err
		}

		for i, path := range args {
			res := results[i]
			if st != nil {
				run, err := st.SaveRun(ctx, path, res)
				if err != nil {
					return eris.Wrap(err, "parse: save run")
				}
				zap.L().Info("stored run", zap.String("run_id", run.ID), zap.String("source", path))
			}
			if err := emitResult(path, out, outDir, res); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().String("out", "", "output file for a single document (default stdout)")
	parseCmd.Flags().String("out-dir", "", "write <name>.json per document into this directory")
	parseCmd.Flags().String("now", "", "reference date YYYY-MM-DD for current phase (default today)")
	parseCmd.Flags().Int("year", 0, "schedule year (default from config or the reference date)")
	parseCmd.Flags().String("phase-table", "", "built-in phase table: detailed or compact")
	parseCmd.Flags().String("phase-file", "", "YAML phase table file")
	parseCmd.Flags().String("provider", "", "page source: auto, pdftotext, xlsx, json")
	parseCmd.Flags().Int("concurrency", 4, "documents parsed in parallel")
	parseCmd.Flags().Bool("no-store", false, "do not record the run")
	rootCmd.AddCommand(parseCmd)
}

// applyParseFlags lets explicitly set flags override the loaded config.
func applyParseFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	var err error
	if f.Changed("year") {
		if cfg.Parse.Year, err = f.GetInt("year"); err != nil {
			return err
		}
	}
	if f.Changed("phase-table") {
		if cfg.Parse.PhaseTable, err = f.GetString("phase-table"); err != nil {
			return err
		}
	}
	if f.Changed("phase-file") {
		if cfg.Parse.PhaseFile, err = f.GetString("phase-file"); err != nil {
			return err
		}
	}
	if f.Changed("provider") {
		if cfg.Source.Provider, err = f.GetString("provider"); err != nil {
			return err
		}
	}
	return nil
}

// clockFor returns time.Now, or a fixed noon UTC clock for a YYYY-MM-DD value.
func clockFor(value string) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return nil, eris.Wrapf(err, "parse: invalid --now %q", value)
	}
	fixed := t.Add(12 * time.Hour)
	return func() time.Time { return fixed }, nil
}

// phaseTable loads the phase file when set, else the named built-in table.
func phaseTable(file, name string) (schedule.PhaseTable, error) {
	if file != "" {
		return schedule.LoadPhaseTable(file)
	}
	return schedule.PhaseTableByName(name)
}

// parserOptions builds the parser configuration.
func parserOptions(pc config.ParseConfig, clock func() time.Time, log *zap.Logger) ([]schedule.Option, error) {
	table, err := phaseTable(pc.PhaseFile, pc.PhaseTable)
	if err != nil {
		return nil, err
	}

	layout := schedule.DefaultLayout()
	if pc.MinTableRows > 0 {
		layout.MinTableRows = pc.MinTableRows
	}

	return []schedule.Option{
		schedule.WithLayout(layout),
		schedule.WithClassifier(schedule.NewClassifier(table)),
		schedule.WithYear(pc.Year),
		schedule.WithClock(clock),
		schedule.WithLogger(log),
	}, nil
}

type parseFunc func(ctx context.Context, path string) (*model.ParseResult, error)

// parseDocuments runs fn for every path with bounded concurrency and returns
// the results in path order. The first failure cancels the rest.
func parseDocuments(ctx context.Context, paths []string, concurrency int, fn parseFunc) ([]*model.ParseResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]*model.ParseResult, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			res, err := fn(gctx, path)
			if err != nil {
				return eris.Wrapf(err, "parse %s", path)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseDocument loads one document, recovers its projects and fills in
// customer details when a directory is available.
func parseDocument(ctx context.Context, src config.SourceConfig, p *schedule.Parser, dir *directory.Directory, path string) (*model.ParseResult, error) {
	log := zap.L().With(zap.String("source", path))

	loader, err := document.NewLoader(src, path, log)
	if err != nil {
		return nil, err
	}
	pages, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	res, err := p.Parse(schedule.PagesOf(pages))
	if err != nil {
		return nil, err
	}

	if dir != nil {
		matched := dir.Enrich(res.Projects)
		log.Info("enriched projects from directory",
			zap.Int("matched", matched),
			zap.Int("projects", len(res.Projects)),
		)
	}
	return res, nil
}

// emitResult writes res to out, into outDir, or to stdout.
func emitResult(path, out, outDir string, res *model.ParseResult) error {
	target := out
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrap(err, "parse: create output dir")
		}
		target = filepath.Join(outDir, outputName(path))
	}

	if target == "" || target == "-" {
		return writeResult(os.Stdout, res)
	}

	f, err := os.Create(target)
	if err != nil {
		return eris.Wrap(err, "parse: create output file")
	}
	if err := writeResult(f, res); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "parse: close output file")
}

func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

func writeResult(w io.Writer, res *model.ParseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(res), "parse: encode result")
}
