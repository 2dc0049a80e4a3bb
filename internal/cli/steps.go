package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"pydockerize/internal/app"
	"pydockerize/internal/runtime"
)

var errRunArgsWithoutRun = errors.New("arguments after -- are only accepted by the run step")

// newStepCmd builds the subcommand for one step. Further step names may
// follow it; everything after -- is passed to the engine's run command.
func newStepCmd(s *rootState, step runtime.Step, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(step) + " [STEP...] [-- RUN_ARGS...]",
		Short: short,
		Long: short + `.

Additional steps may be chained after this one and run in the order given,
all sharing the same configuration. Arguments after -- are appended to the
engine's run command.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, runArgs := splitAtDash(args, cmd.ArgsLenAtDash())
			steps, err := runtime.ParseSteps(append([]string{string(step)}, names...)...)
			if err != nil {
				return err
			}
			if len(runArgs) > 0 && !slices.Contains(steps, runtime.StepRun) {
				return errRunArgsWithoutRun
			}
			return s.execute(cmd, steps, runArgs)
		},
	}
}

func (s *rootState) execute(cmd *cobra.Command, steps []runtime.Step, runArgs []string) error {
	cfg, err := s.resolve()
	if err != nil {
		return err
	}
	if s.verbose {
		cfg.PrintSummary(cmd.ErrOrStderr())
	}

	opts := []app.Option{
		app.WithOutput(cmd.OutOrStdout()),
		app.WithLogger(s.logger),
	}
	if s.v.GetBool("preview") {
		preview, err := previewer(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		opts = append(opts, app.WithPreview(preview))
	}

	if slices.ContainsFunc(steps, runtime.Step.UsesEngine) {
		s.logger.Debug("using engine", "binary", cfg.Engine(), "dry-run", cfg.DryRun())
	}
	a := app.New(cfg, s.newRunner(cfg, s.logger), opts...)
	if err := a.Execute(cmd.Context(), steps, runArgs); err != nil {
		return withExitCode(err)
	}

	names := make([]string, len(steps))
	for i, st := range steps {
		names[i] = CmdStyle.Render(string(st))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("✓ done:"), strings.Join(names, ", "))
	return nil
}

func splitAtDash(args []string, dash int) (before, after []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

