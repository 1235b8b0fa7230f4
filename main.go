package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/takaryo1010/wordmerge/internal/config"
	"github.com/takaryo1010/wordmerge/internal/logger"
	"github.com/takaryo1010/wordmerge/internal/merge"
	"github.com/takaryo1010/wordmerge/internal/record"
	"github.com/takaryo1010/wordmerge/internal/report"
	"github.com/takaryo1010/wordmerge/internal/store"
)

// The data files are fixed; they are always resolved against the working
// directory.
const (
	originalFile   = "./STRONGS_WORD.json"
	translatedFile = "./STRONGS_WORD_TRADUZIDO.json"
	outputFile     = "STRONGS_WORD_COMBINADO.json"
)

// cliFlags holds the command-line overrides for the config file.
type cliFlags struct {
	configPath   string
	logLevel     string
	logJSON      bool
	indent       int
	dryRun       bool
	reportPath   string
	reportFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:   "wordmerge",
		Short: "Merge translated dictionary entries into the original word list",
		Long: `wordmerge joins the translated word list with the original one on the
"ID" field and writes the combined list.

Files (relative to the working directory):
  ` + originalFile + `            original entries
  ` + translatedFile + `  translated entries
  ` + outputFile + `     merged output, one entry per translated entry

Translated fields override original fields with the same name. Entries
whose ID has no original are written as they are.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &f, cfg)
			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return err
			}

			cfg.OriginalPath = originalFile
			cfg.TranslatedPath = translatedFile
			cfg.OutputPath = outputFile

			lvl, _ := logger.ParseLevel(cfg.LogLevel)
			logger.SetOutput(cmd.ErrOrStderr(), cfg.LogFormat == config.LogFormatJSON)
			logger.SetLevel(lvl)

			return run(cfg, cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Config file (default \""+config.DefaultFile+"\" when present)")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.BoolVar(&f.logJSON, "log-json", false, "Write logs as JSON")
	fl.IntVar(&f.indent, "indent", record.DefaultIndent, "Spaces per indentation level in the output")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Merge without writing the output file")
	fl.StringVar(&f.reportPath, "report", "", "Write a merge report to this file")
	fl.StringVar(&f.reportFormat, "report-format", config.ReportMarkdown, "Report format: markdown or html")

	return cmd
}

// applyFlags copies the flags the user actually set over cfg.
func applyFlags(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("log-json") {
		cfg.LogFormat = config.LogFormatText
		if f.logJSON {
			cfg.LogFormat = config.LogFormatJSON
		}
	}
	if fl.Changed("indent") {
		cfg.Indent = f.indent
	}
	if fl.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if fl.Changed("report") {
		cfg.Report.Path = f.reportPath
	}
	if fl.Changed("report-format") {
		cfg.Report.Format = f.reportFormat
	}
}

// run loads both word lists, merges them and writes the result. Nothing is
// written unless the whole merge succeeds.
func run(cfg *config.Config, stdout io.Writer) error {
	log := logger.Logger

	translated, err := store.LoadRecords(cfg.TranslatedPath)
	if err != nil {
		return err
	}
	log.Info("loaded translated records", "path", cfg.TranslatedPath, "count", len(translated))

	originals, err := store.LoadRecords(cfg.OriginalPath)
	if err != nil {
		return err
	}
	log.Info("loaded original records", "path", cfg.OriginalPath, "count", len(originals))

	res, err := merge.Merge(originals, translated)
	if err != nil {
		return err
	}
	if n := len(res.Duplicates); n > 0 {
		log.Warn("duplicate IDs in original records, later entries win", "count", n)
	}
	if res.MissingID > 0 {
		log.Warn("translated records without ID kept unmerged", "count", res.MissingID)
	}
	log.Info("merged records",
		"matched", res.Matched,
		"unmatched", res.Unmatched,
		"missing_id", res.MissingID,
	)

	data, err := record.Marshal(res.Records, cfg.Indent)
	if err != nil {
		return fmt.Errorf("failed to encode merged records: %w", err)
	}

	if !cfg.DryRun {
		if err := store.WriteFile(cfg.OutputPath, data); err != nil {
			return err
		}
		log.Debug("wrote merged records", "path", cfg.OutputPath, "bytes", len(data))
	}

	if cfg.Report.Path != "" {
		summary := report.FromResult(cfg, len(originals), len(translated), res)
		if err := report.Write(cfg.Report.Path, cfg.Report.Format, summary); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info("wrote report", "path", cfg.Report.Path, "format", cfg.Report.Format)
	}

	if cfg.DryRun {
		fmt.Fprintf(stdout, "Dry run: %d merged records not written to %s\n", len(res.Records), cfg.OutputPath)
		return nil
	}
	fmt.Fprintf(stdout, "Merged JSON saved as %s\n", cfg.OutputPath)
	return nil
}
