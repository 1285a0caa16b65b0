package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpglue/internal/catalog"
	"github.com/roach88/sharpglue/internal/origin"
	"github.com/roach88/sharpglue/internal/registryfile"
	"github.com/roach88/sharpglue/internal/store"
)

// PruneOptions holds flags for the prune command.
type PruneOptions struct {
	*RootOptions
	Catalog string
	Output  string
	DryRun  bool
}

// PruneResult is the JSON payload of a successful prune command.
type PruneResult struct {
	Registry string `json:"registry"`
	Output   string `json:"output,omitempty"`
	DryRun   bool   `json:"dry_run"`
	registryfile.Report
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PruneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prune <registry.yaml>",
		Short: "Remove foreign types from a registry file",
		Long: `Remove every registry entry whose type is not owned by a trusted
binding module. Owning modules are looked up in the CUE type catalog;
types missing from the catalog are treated as foreign.

Example:
  sharpglue prune registry.yaml --catalog ./catalog
  sharpglue prune registry.yaml --catalog ./catalog --dry-run --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "directory of CUE type catalog files (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the pruned registry here instead of in place")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report removals without writing")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runPrune(opts *PruneOptions, registryPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	cat, err := catalog.Load(opts.Catalog)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), err)
	}
	slog.Debug("catalog loaded", "dir", opts.Catalog, "modules", len(cat.Modules()), "types", cat.Len())

	doc, err := registryfile.Load(registryPath)
	if err != nil {
		code := ErrCodeRegistry
		if errors.Is(err, os.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return formatter.Fail(ExitCommandError, code, err.Error(), err)
	}

	journal, err := openJournal(opts.RootOptions, cfg)
	if err != nil {
		slog.Warn("journal unavailable, run will not be recorded", "path", cfg.Journal, "error", err)
	}
	defer closeJournal(journal)

	classifier := origin.NewClassifier(cat.Resolver(), cfg.ClassifierOptions()...)
	report := doc.Prune(classifier)
	for _, name := range report.RemovedByType {
		formatter.VerboseLog("removed type %s", name)
	}
	for _, key := range report.RemovedByKey {
		formatter.VerboseLog("removed key %s", key)
	}

	result := PruneResult{Registry: registryPath, DryRun: opts.DryRun, Report: report}
	if !opts.DryRun {
		result.Output = registryPath
		if opts.Output != "" {
			result.Output = opts.Output
		}
		if err := doc.Save(result.Output); err != nil {
			recordRun(cmd, journal, store.KindPrune, registryPath, false, map[string]any{"error": err.Error()})
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), err)
		}
	}

	recordRun(cmd, journal, store.KindPrune, registryPath, true, map[string]any{
		"removed": report.Removed(),
		"kept":    report.Kept,
		"dry_run": opts.DryRun,
	})

	if formatter.JSON() {
		return formatter.Success(result)
	}

	verb := "Removed"
	if opts.DryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(formatter.Writer, "✓ %s %d foreign entr%s, kept %d\n", verb, report.Removed(), plural(report.Removed()), report.Kept)
	if result.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %s\n", result.Output)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
