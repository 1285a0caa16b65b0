package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpglue/internal/diag"
	"github.com/roach88/sharpglue/internal/project"
	"github.com/roach88/sharpglue/internal/store"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	GDExtension bool
	Force       bool
}

// NewResult is the JSON payload of a successful new command.
type NewResult struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Extension bool   `json:"extension"`
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <dir> <name>",
		Short: "Generate a project descriptor",
		Long: `Generate <dir>/<name>.csproj from the project template.

The directory must already exist. The descriptor is written atomically;
on failure nothing is left behind and the cause is reported.

Example:
  sharpglue new ./game MyGame
  sharpglue new ./game MyGame --gdextension`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.GDExtension, "gdextension", false, "declare extension support in the descriptor")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing descriptor")

	return cmd
}

func runNew(opts *NewOptions, dir, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	journal, err := openJournal(opts.RootOptions, cfg)
	if err != nil {
		slog.Warn("journal unavailable, run will not be recorded", "path", cfg.Journal, "error", err)
	}
	defer closeJournal(journal)

	// Failures are swallowed by the scaffolder; the recorder lets us report them.
	rec := diag.NewRecorder(diag.Default())
	scaffolder := project.NewScaffolder(cfg.Generator(opts.Force), rec)

	formatter.VerboseLog("Generating %s in %s", project.DescriptorName(name), dir)
	path, ok := scaffolder.Generate(dir, name, opts.GDExtension)

	detail := map[string]any{"name": name, "extension": opts.GDExtension}
	subject := path
	if !ok {
		subject = filepath.Join(dir, project.DescriptorName(name))
		if msgs := rec.Messages(); len(msgs) > 0 {
			detail["error"] = msgs[0]
		}
	}
	recordRun(cmd, journal, store.KindGenerate, subject, ok, detail)

	if !ok {
		msg := "project generation failed"
		if msgs := rec.Messages(); len(msgs) > 0 {
			msg = msgs[0]
		}
		return formatter.Fail(ExitFailure, ErrCodeGenerateFailed, msg, nil)
	}

	result := NewResult{Path: path, Name: name, Extension: opts.GDExtension}
	if formatter.JSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Created %s\n", path)
	return nil
}
