package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpglue/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Kind  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recorded runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "number of runs to show (0 = all)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show runs of this kind (generate|prune)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	kind := store.RunKind(opts.Kind)
	switch kind {
	case "", store.KindGenerate, store.KindPrune:
	default:
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid kind %q", opts.Kind), nil)
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	if opts.NoJournal {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, "history needs the journal; drop --no-journal", nil)
	}

	journal, err := openJournal(opts.RootOptions, cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), err)
	}
	defer closeJournal(journal)

	runs, err := journal.Runs(cmd.Context(), kind, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), err)
	}

	if formatter.JSON() {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%-5s %-9s %-7s %-19s %s\n", "SEQ", "KIND", "STATUS", "WHEN", "SUBJECT")
	for _, run := range runs {
		status := "ok"
		if !run.OK {
			status = "failed"
		}
		when := "-"
		if ts, ok := run.Time(); ok {
			when = ts.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%-5d %-9s %-7s %-19s %s\n", run.Seq, run.Kind, status, when, run.Subject)
	}
	return nil
}
