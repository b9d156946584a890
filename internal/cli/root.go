package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/looker-open-source/create-looker-extension/internal/config"
	"github.com/looker-open-source/create-looker-extension/pkg/version"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configFile  string
	templateDir string
	verbose     bool
	noColor     bool
}

// errReported marks an error whose message has already been printed.
var errReported = errors.New("error reported")

type reportedError struct{ err error }

func (e *reportedError) Error() string   { return e.err.Error() }
func (e *reportedError) Unwrap() []error { return []error{errReported, e.err} }

func reported(err error) error {
	return &reportedError{err: err}
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the create-looker-extension CLI
// @MX:REASON: [AUTO] called from cmd/create-looker-extension/main.go
// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so an in-flight generation can clean up.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, defaultEnvironment(), os.Args[1:])
}

func execute(ctx context.Context, env *environment, args []string) error {
	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	cmd.SetIn(env.in)
	cmd.SetOut(env.out)
	cmd.SetErr(env.errOut)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(env.errOut, "Error: %v\n", err)
	}
	return err
}

func newRootCommand(env *environment) *cobra.Command {
	flags := &rootFlags{}
	loader := config.NewLoader()
	var deps *Dependencies

	create := &createFlags{}
	cmd := &cobra.Command{
		Use:   "create-looker-extension [project-name]",
		Short: "Scaffold a new Looker extension",
		Long: `create-looker-extension asks a few questions and generates a ready to run
Looker extension project: webpack config, package.json, a LookML manifest and
starter source for React or plain JavaScript/TypeScript.

Examples:
  create-looker-extension                     Ask for everything interactively
  create-looker-extension my-ext              Use my-ext as the default project name
  create-looker-extension --answers a.yaml    Generate without prompting
  create-looker-extension --dry-run my-ext    Show the files that would be written`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load(config.LoadOptions{File: flags.configFile})
			if err != nil {
				return err
			}
			d, err := newDependencies(cfg, env, flags.noColor, flags.verbose)
			if err != nil {
				return err
			}
			deps = d
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, deps, create, args)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("create-looker-extension %s\n", version.GetFullVersion()))

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file (default: "+config.FilePath()+")")
	pf.StringVar(&flags.templateDir, "template-dir", "", "Read templates from this directory instead of the built-in set")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	f := cmd.Flags()
	f.StringVar(&create.answersFile, "answers", "", "YAML or JSON answers file; skips the prompts")
	f.BoolVar(&create.skipInstall, "skip-install", false, "Do not install dependencies")
	f.BoolVar(&create.dryRun, "dry-run", false, "List the files that would be generated without writing them")
	f.BoolVar(&create.nonInteractive, "non-interactive", false, "Never prompt; use the answers file and defaults")

	v := loader.Viper()
	_ = v.BindPFlag(config.KeyTemplateDir, pf.Lookup("template-dir"))
	_ = v.BindPFlag(config.KeySkipInstall, f.Lookup("skip-install"))

	cmd.AddCommand(newListCommand(func() *Dependencies { return deps }))
	cmd.AddCommand(newVersionCommand())
	return cmd
}
