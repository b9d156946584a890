// Package cli provides the Cobra command tree and dependency wiring for
// create-looker-extension. This file defines the Dependencies struct
// (Composition Root) that wires the domain packages together.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/looker-open-source/create-looker-extension/internal/config"
	"github.com/looker-open-source/create-looker-extension/internal/core/project"
	"github.com/looker-open-source/create-looker-extension/internal/installer"
	"github.com/looker-open-source/create-looker-extension/internal/template"
	"github.com/looker-open-source/create-looker-extension/internal/ui"
)

// environment is the process surface a command runs against. Tests
// replace it to capture output and to fake the package manager.
type environment struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs
	runner installer.Runner
	// headless forces headless mode when non-nil.
	headless *bool
}

func defaultEnvironment() *environment {
	return &environment{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		fs:     afero.NewOsFs(),
		runner: installer.ExecRunner{},
	}
}

// Dependencies holds the services used by the commands. It is the only
// place where concrete types are instantiated and wired together.
type Dependencies struct {
	Config      *config.Config
	Store       *template.Store
	Installer   *installer.Installer
	Initializer project.Initializer
	Theme       *ui.Theme
	Headless    *ui.HeadlessManager
	Output      *printer
	Logger      *slog.Logger
	Progress    ui.Progress

	progress *writeProgress
}

// @MX:ANCHOR: [AUTO] newDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] every command reaches the domain packages through the struct built here
// newDependencies wires the domain packages from cfg.
func newDependencies(cfg *config.Config, env *environment, noColor, verbose bool) (*Dependencies, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(env.errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	hm := ui.NewHeadlessManager()
	if env.headless != nil {
		hm.ForceHeadless(*env.headless)
	}
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: noColor || os.Getenv("NO_COLOR") != ""})
	out := newPrinter(env.out, env.errOut, theme)

	store := template.EmbeddedStore()
	if cfg.TemplateDir != "" {
		s, err := template.DirStore(cfg.TemplateDir)
		if err != nil {
			return nil, err
		}
		store = s
	}

	indicators := ui.NewProgressTo(theme, hm, env.out)
	progress := &writeProgress{progress: indicators}

	inst := installer.New(
		installer.WithPackageManager(cfg.PackageManager, cfg.InstallArgs...),
		installer.WithMinVersion(cfg.MinPackageManagerVersion),
		installer.WithRunner(env.runner),
		installer.WithStdio(env.in, env.out, env.errOut),
		installer.WithNotify(out.Info),
		installer.WithLogger(logger),
	)

	materializer := template.NewMaterializer(store,
		template.WithDynamicMarker(cfg.DynamicMarker),
		template.WithLogger(logger),
	)
	finalizer := template.ExtensionFinalizer{BundleURL: cfg.BundleURL}
	writer := project.NewWriter(env.fs,
		project.WithParallelWrites(cfg.MaxParallelWrites),
		project.WithProgress(progress.report),
		project.WithWriterLogger(logger),
	)
	// The progress bar owns the terminal until the install starts.
	step := installStep{installer: inst, before: progress.finish}

	return &Dependencies{
		Config:      cfg,
		Store:       store,
		Installer:   inst,
		Initializer: project.NewInitializer(materializer, finalizer, writer, step, logger),
		Theme:       theme,
		Headless:    hm,
		Output:      out,
		Logger:      logger,
		Progress:    indicators,
		progress:    progress,
	}, nil
}

// installStep runs before ahead of each install.
type installStep struct {
	installer *installer.Installer
	before    func()
}

func (s installStep) Install(ctx context.Context, dir string) error {
	if s.before != nil {
		s.before()
	}
	return s.installer.Install(ctx, dir)
}
