// Package cli provides the command-line interface layer for safefs. It builds
// the shared Context every command runs with: configuration, terminal UI,
// logger and the guarded filesystem wired to the UI's overwrite prompt.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/zoro11031/safefs/internal/config"
	"github.com/zoro11031/safefs/internal/ui"
	"github.com/zoro11031/safefs/pkg/safefs"
)

// Context holds all dependencies needed by a command
type Context struct {
	Config *config.Config
	UI     *ui.UI
	FS     *safefs.FileSystem
	Log    *logrus.Logger
}

// Options customizes NewContext
type Options struct {
	// ConfigPath selects the config file; empty means ~/.safefs.conf
	ConfigPath string
	// Flags are bound over config keys, see config.FlagNames
	Flags *pflag.FlagSet
	// AssumeYes answers every overwrite prompt with yes
	AssumeYes bool
	// NonInteractive disables prompts. It is forced on when stdin is not a
	// terminal.
	NonInteractive bool

	// Backend, UI and LogOutput replace the host filesystem, terminal UI and
	// stderr, mainly for tests
	Backend   afero.Fs
	UI        *ui.UI
	LogOutput io.Writer
}

// NewContext creates a Context with all dependencies initialized
func NewContext(opts Options) (*Context, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Flags != nil {
		if err := cfg.BindFlags(opts.Flags); err != nil {
			return nil, err
		}
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log, err := NewLogger(cfg.GetOrDefault(config.KeyLogLevel, config.Defaults[config.KeyLogLevel]), out)
	if err != nil {
		return nil, err
	}

	uiInstance := opts.UI
	if uiInstance == nil {
		uiInstance = ui.New()
		uiInstance.SetNonInteractive(opts.NonInteractive || !isatty.IsTerminal(os.Stdin.Fd()))
	}
	uiInstance.SetAssumeYes(opts.AssumeYes)

	fsOpts := []safefs.Option{safefs.WithLogger(log)}
	if opts.Backend != nil {
		fsOpts = append(fsOpts, safefs.WithFs(opts.Backend))
	}
	confirm, err := cfg.GetBool(config.KeyConfirm)
	if err != nil {
		return nil, err
	}
	if confirm || opts.AssumeYes {
		fsOpts = append(fsOpts, safefs.WithConfirmer(uiInstance))
		if uiInstance.IsNonInteractive() && !opts.AssumeYes {
			log.Debug("no terminal for overwrite prompts, existing destinations are kept")
		}
	}

	return &Context{
		Config: cfg,
		UI:     uiInstance,
		FS:     safefs.New(fsOpts...),
		Log:    log,
	}, nil
}

// Overwrite resolves the overwrite setting: the --overwrite flag when given,
// then SAFEFS_OVERWRITE, then the config file.
func (c *Context) Overwrite() (bool, error) {
	return c.Config.GetBool(config.KeyOverwrite)
}

// NewLogger returns a logrus logger writing text lines to out at level.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05Z07:00",
	})
	return log, nil
}
