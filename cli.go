package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// modeEnv supplies the default for --mode.
const modeEnv = "LRN_MODE"

// app is what a presentation needs once flags and the course are resolved.
type app struct {
	course *reader.Course
	source string
	mode   variant.Mode
	watch  bool
	logger *zap.Logger
}

type options struct {
	mode    string
	watch   bool
	logFile string
	debug   bool
	formats bool
}

func newRootCmd(run func(ctx context.Context, a app) error) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "lrn [file]",
		Short: "Step through educational sections one at a time",
		Long: `lrn presents a course as a sequence of sections. Each section has a
body, key points and optionally examples that can be revealed on demand.

Pick the comprehensive or the beginner presentation at start, or pass
--mode. Without a file, a built-in course on educational theory is shown.

Controls:
  ←/→ h/l     Previous/next section
  1-9 g G     Jump to a section, the first or the last
  tab enter   Move the indicator cursor and jump to it
  SPACE e     Show/hide examples
  y           Copy the section as markdown
  b ESC       Back to the mode selector
  q           Quit`,
		Example: `  lrn                          Read the built-in course
  lrn course.yaml              Read a course file
  lrn -m beginner notes.md     Skip the selector
  lrn --watch course.yaml      Reload when the file changes`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.formats {
				for _, f := range reader.SupportedFormats() {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			var mode variant.Mode
			if opts.mode != "" {
				m, err := variant.ParseMode(opts.mode)
				if err != nil {
					return err
				}
				mode = m
			}

			course, source, err := loadCourse(args)
			if err != nil {
				return err
			}
			if opts.watch && source == "" {
				return errors.New("--watch needs a course file")
			}

			logger, err := newLogger(opts.logFile, opts.debug)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			logger.Info("course loaded",
				zap.String("file", source),
				zap.String("title", course.Title),
				zap.Stringer("mode", mode))

			return run(cmd.Context(), app{
				course: course,
				source: source,
				mode:   mode,
				watch:  opts.watch,
				logger: logger,
			})
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", os.Getenv(modeEnv), "presentation mode: comprehensive or beginner (env "+modeEnv+")")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "reload the course when the file changes")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	flags.BoolVar(&opts.debug, "debug", false, "log navigation at debug level")
	flags.BoolVar(&opts.formats, "formats", false, "list supported course formats and exit")

	return cmd
}

// loadCourse reads the course named by args, or the built-in course when
// there is none. source is empty for the built-in course.
func loadCourse(args []string) (course *reader.Course, source string, err error) {
	if len(args) == 0 {
		course, err = reader.DefaultCourse()
		return course, "", err
	}
	source = args[0]
	course, err = reader.Load(source)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file '%s': %w", source, err)
	}
	return course, source, nil
}

// newLogger logs to path, or nowhere when path is empty: the terminal belongs
// to the reader.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(present).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
