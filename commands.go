package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/sukechannnn/gitsnap/config"
	"github.com/sukechannnn/gitsnap/git"
	"github.com/sukechannnn/gitsnap/logging"
	"github.com/sukechannnn/gitsnap/ui"
	"github.com/sukechannnn/gitsnap/util"
	"github.com/sukechannnn/gitsnap/watcher"
	"go.uber.org/zap"
)

// errReported is returned after a command already wrote its error output.
var errReported = errors.New("error already reported")

type cli struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	resolver  *git.Resolver
	newLogger func(level string) (*zap.Logger, error)
}

func newCLI() *cli {
	return &cli{newLogger: logging.NewLogger}
}

func newRootCmd() *cobra.Command {
	return newCLI().rootCmd()
}

// run executes the command line and returns the exit code. The logger is
// flushed on every exit path, failed commands included.
func (c *cli) run(args []string, stdout, stderr io.Writer) int {
	defer c.syncLogger()

	cmd := c.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *cli) syncLogger() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) rootCmd() *cobra.Command {
	var projectPath, logLevel, style string

	rootCmd := &cobra.Command{
		Use:   "gitsnap",
		Short: "Show the committed and current content of a file",
		Long: `gitsnap resolves a file's content at HEAD and on disk, discovering the
repository that actually contains the file, so the two can be compared.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if projectPath != "" {
				cfg.ProjectPath = projectPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if style != "" {
				cfg.Style = style
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := c.newLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}

			util.SetStyle(cfg.Style)
			c.cfg = cfg
			c.logger = logger
			c.resolver = git.NewResolver(git.WithLogger(logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "C", "", "project path used to resolve relative files (default \".\")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&style, "style", "", "chroma style used for highlighting")

	rootCmd.AddCommand(c.showCmd(), c.catCmd(), c.viewCmd())
	return rootCmd
}

func (c *cli) showCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Summarize a file at HEAD and in the working tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			snapshot, err := c.resolver.Resolve(c.cfg.ProjectPath, args[0])
			if err != nil {
				c.logger.Debug("resolve failed", zap.String("file", args[0]), zap.Error(err))
				if asJSON {
					if werr := writeJSON(out, errorRecord(err)); werr != nil {
						return werr
					}
					return errReported
				}
				return err
			}

			if asJSON {
				return writeJSON(out, snapshot)
			}
			printSummary(out, args[0], snapshot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func (c *cli) catCmd() *cobra.Command {
	var side string
	var plain bool

	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print one side of a file",
		Example: `  gitsnap cat --side head src/main.go
  gitsnap cat src/main.go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if side != "head" && side != "workdir" {
				return fmt.Errorf("unknown side %q (want head or workdir)", side)
			}

			snapshot, err := c.resolver.Resolve(c.cfg.ProjectPath, args[0])
			if err != nil {
				return err
			}

			content, exists := snapshot.Current, snapshot.ExistsInWorkdir
			if side == "head" {
				content, exists = snapshot.Original, snapshot.ExistsAtHead
			}
			if !exists {
				return fmt.Errorf("%s does not exist in %s", args[0], side)
			}

			out := cmd.OutOrStdout()
			if plain || color.NoColor {
				_, err := io.WriteString(out, content)
				return err
			}
			return util.HighlightANSI(out, args[0], content)
		},
	}

	cmd.Flags().StringVar(&side, "side", "workdir", "which side to print: head or workdir")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	return cmd
}

func (c *cli) viewCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Open HEAD and working tree side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]
			snapshot, err := c.resolver.Resolve(c.cfg.ProjectPath, filePath)
			if err != nil {
				return err
			}

			app := tview.NewApplication()
			view := ui.NewSnapshotView(app, filePath, app.Stop)
			view.SetSnapshot(snapshot)

			if watch {
				target := filePath
				if !filepath.IsAbs(target) {
					target = filepath.Join(c.cfg.ProjectPath, target)
				}
				w, err := watcher.New(target, watcher.DefaultDebounce)
				if err != nil {
					return err
				}
				defer w.Close()
				w.Start()
				go c.refreshOnChange(app, view, w, filePath)
			}

			return app.SetRoot(view.Root(), true).Run()
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the file changes on disk")
	return cmd
}

func (c *cli) refreshOnChange(app *tview.Application, view *ui.SnapshotView, w *watcher.Watcher, filePath string) {
	for {
		select {
		case _, ok := <-w.Changes:
			if !ok {
				return
			}
			snapshot, err := c.resolver.Resolve(c.cfg.ProjectPath, filePath)
			app.QueueUpdateDraw(func() {
				if err != nil {
					view.SetError(err)
					return
				}
				view.SetSnapshot(snapshot)
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			c.logger.Warn("watcher error", zap.String("file", filePath), zap.Error(err))
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorRecord converts any resolve failure into the structured error record.
func errorRecord(err error) map[string]*git.Error {
	var snapErr *git.Error
	if !errors.As(err, &snapErr) {
		snapErr = &git.Error{Message: err.Error()}
	}
	return map[string]*git.Error{"error": {
		Kind:    snapErr.Kind,
		Path:    snapErr.Path,
		Message: snapErr.Error(),
	}}
}

func printSummary(out io.Writer, filePath string, snapshot *git.FileSnapshot) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	status := string(snapshot.Status())
	switch snapshot.Status() {
	case git.StatusAdded:
		status = green(status)
	case git.StatusDeleted:
		status = red(status)
	case git.StatusModified:
		status = yellow(status)
	default:
		status = faint(status)
	}

	side := func(exists bool, content string) string {
		if !exists {
			return faint("absent")
		}
		return fmt.Sprintf("present (%d lines)", len(util.SplitLines(content)))
	}

	fmt.Fprintf(out, "%s: %s\n", filePath, status)
	fmt.Fprintf(out, "  HEAD:         %s\n", side(snapshot.ExistsAtHead, snapshot.Original))
	fmt.Fprintf(out, "  working tree: %s\n", side(snapshot.ExistsInWorkdir, snapshot.Current))
}
