package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/looker-open-source/create-looker-extension/internal/cli/wizard"
	"github.com/looker-open-source/create-looker-extension/internal/core/project"
	"github.com/looker-open-source/create-looker-extension/internal/installer"
	"github.com/looker-open-source/create-looker-extension/internal/template"
	"github.com/looker-open-source/create-looker-extension/internal/ui"
	"github.com/looker-open-source/create-looker-extension/pkg/models"
	"github.com/looker-open-source/create-looker-extension/pkg/version"
)

// createFlags are the flags of the generation command.
type createFlags struct {
	answersFile    string
	skipInstall    bool
	dryRun         bool
	nonInteractive bool
}

// @MX:ANCHOR: [AUTO] runCreate is the main entry point for extension generation
// @MX:REASON: [AUTO] every generation goes through here: prompts, pipeline, reporting
// runCreate collects the answers, runs the generation pipeline and reports
// the outcome in the terminal.
func runCreate(cmd *cobra.Command, deps *Dependencies, flags *createFlags, args []string) error {
	ctx := cmd.Context()
	out := deps.Output
	defer deps.progress.finish()

	projectName := ""
	if len(args) > 0 {
		projectName = args[0]
	}

	interactive := flags.answersFile == "" && !flags.nonInteractive && !deps.Headless.IsHeadless()
	if interactive {
		out.Plain(banner(deps.Theme))
	}

	answers, err := collectAnswers(ctx, deps, flags, projectName, interactive)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) || errors.Is(err, context.Canceled) {
			out.Warn("Generation cancelled.")
			return nil
		}
		out.Fail(fmt.Sprintf("Error receiving answers: %v", err))
		return reported(err)
	}
	deps.Logger.Debug("answers collected", "answers", answers)

	skipInstall := deps.Config.SkipInstall || flags.skipInstall
	if !skipInstall && !flags.dryRun {
		checkPackageManager(ctx, deps)
	}

	res, err := deps.Initializer.Init(ctx, answers, project.InitOptions{
		DryRun:      flags.dryRun,
		SkipInstall: skipInstall,
	})
	deps.progress.finish()
	if res != nil {
		reportCollisions(out, res.Collisions)
	}
	if err != nil {
		reportInitError(out, err)
		return reported(err)
	}

	if res.DryRun {
		out.Info(fmt.Sprintf("Dry run: %d files would be written to %s", len(res.Files), res.ProjectDir))
		for _, f := range res.Files {
			out.Muted("  " + filepath.ToSlash(f))
		}
		return nil
	}

	if !res.Installed {
		out.Info(fmt.Sprintf("Skipped dependency installation; run `%s install` in %s.", deps.Installer.PackageManager(), answers.ProjectName))
	}
	out.Plain(ui.RenderMarkdown(deps.Theme, deps.Headless, installer.NextSteps(answers.ProjectName, deps.Installer.PackageManager(), deps.Config.DocsURL)))
	return nil
}

// collectAnswers runs the interactive wizard or resolves the questions from
// the answers file and defaults. The positional project name is the
// default for the name question, so an answers file value wins over it.
func collectAnswers(ctx context.Context, deps *Dependencies, flags *createFlags, projectName string, interactive bool) (*models.Answers, error) {
	questions := wizard.DefaultQuestions(projectName)
	if interactive {
		return wizard.CollectWithLogger(ctx, questions, wizard.NewFormPrompter(), deps.Logger)
	}

	var values map[models.Key]any
	if flags.answersFile != "" {
		v, err := wizard.LoadAnswersFile(flags.answersFile)
		if err != nil {
			return nil, err
		}
		values = v
	}
	return wizard.CollectWithLogger(ctx, questions, wizard.NewScriptedPrompter(values), deps.Logger)
}

// checkPackageManager warns when the package manager is missing or too old.
// The version probe runs under a spinner.
func checkPackageManager(ctx context.Context, deps *Dependencies) {
	pm := deps.Installer.PackageManager()
	sp := deps.Progress.Spinner("Checking " + pm)
	v, err := deps.Installer.CheckVersion(ctx)
	result := "unknown"
	if v != nil {
		result = v.String()
	}
	sp.Stop(result)
	if err != nil {
		deps.Output.Warn(fmt.Sprintf("Warning: %v", err))
		return
	}
	deps.Logger.Debug("package manager found", "name", pm, "version", v.String())
}

func reportCollisions(out *printer, collisions []*template.CollisionError) {
	for _, c := range collisions {
		out.Warn(fmt.Sprintf("Error copying template files: %v", c))
	}
}

// reportInitError prints the message matching the failed stage.
func reportInitError(out *printer, err error) {
	switch {
	case errors.Is(err, installer.ErrInstallInterrupted), errors.Is(err, context.Canceled):
		out.Info("Generation interrupted, cleaning up temp files...")
		out.Info("Cleaned up, exiting!")
		if errors.Is(err, installer.ErrInstallInterrupted) {
			out.Warn("Dependency installation failed. See log lines above for detailed error information.")
		}
	case errors.Is(err, installer.ErrInstallFailed):
		out.Fail(fmt.Sprintf("Error installing extension dependencies: %v", err))
	case errors.Is(err, project.ErrProjectExists):
		out.Fail(fmt.Sprintf("Error generating extension: %v. Choose another project name or remove the directory.", err))
	case errors.Is(err, project.ErrWriteFailed):
		out.Fail(capitalize(err.Error()))
	default:
		out.Fail(fmt.Sprintf("Error generating extension: %v", err))
	}
}

func banner(theme *ui.Theme) string {
	return theme.Info("create-looker-extension") + " " + theme.Muted(version.GetVersion())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
