package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/pkg/version"
	"github.com/spf13/cobra"
)

// integrateRunner performs a run for the parsed arguments.
type integrateRunner func(cmd *cobra.Command, label, destination string) error

// NewRootCmd creates the integrate command.
func NewRootCmd(run integrateRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate <label> <destination>",
		Short: "Merge every pull request carrying a label into a destination branch",
		Long: `integrate finds the open pull requests of the current GitHub repository
that carry the given label and merges their branches, in order, into the
destination branch. The destination is first reset to the remote default
branch. The run stops at the first merge conflict so it can be resolved by hand.

The GitHub token is read from git configuration:

  git config --global integrate.github-token <token>`,
		Args:          integrateArgs,
		Version:       version.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], args[1])
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("integrate %s (commit %s, built %s)\n",
		safeValue(version.Version, "dev"),
		safeValue(version.CommitHash, "unknown"),
		safeValue(version.BuildDate, "unknown"),
	))
	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd(runIntegrate).ExecuteContext(ctx)
}

func integrateArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return domain.NewConfigurationError("no github label provided", nil)
	}
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return domain.NewConfigurationError("no destination branch provided", nil)
	}
	if len(args) > 2 {
		return domain.NewConfigurationError(
			fmt.Sprintf("too many arguments: expected <label> <destination>, got %d", len(args)),
			nil,
		)
	}
	return nil
}

func safeValue(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
