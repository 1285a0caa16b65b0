package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpglue/internal/config"
	"github.com/roach88/sharpglue/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Config    string // config file; empty means ./sharpglue.hcl if present
	Journal   string // overrides the configured journal path
	NoJournal bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sharpglue CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sharpglue",
		Short: "Script binding utilities",
		Long: `sharpglue scaffolds script project descriptors and prunes type
registries down to the trusted binding modules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(cmd, opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ./"+config.DefaultFile+")")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", "", "journal database path (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.NoJournal, "no-journal", false, "do not record the run")

	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewPruneCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

func configureLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Journal != "" {
		cfg.Journal = opts.Journal
	}
	return cfg, nil
}

// openJournal opens the configured journal, creating its directory.
// It returns nil when journaling is disabled.
func openJournal(opts *RootOptions, cfg *config.Config) (*store.Store, error) {
	if opts.NoJournal {
		return nil, nil
	}
	if dir := filepath.Dir(cfg.Journal); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}
	return store.Open(cfg.Journal)
}

// recordRun appends to the journal if one is open. Journal failures are
// logged and never fail the command.
func recordRun(cmd *cobra.Command, st *store.Store, kind store.RunKind, subject string, ok bool, detail map[string]any) {
	if st == nil {
		return
	}
	run, err := st.Record(cmd.Context(), kind, subject, ok, detail)
	if err != nil {
		slog.Warn("journal write failed", "kind", kind, "error", err)
		return
	}
	slog.Debug("journal entry recorded", "id", run.ID, "seq", run.Seq)
}

func closeJournal(st *store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		slog.Error("error closing journal", "error", err)
	}
}
