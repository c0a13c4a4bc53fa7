package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runIntegrate wires the dependencies for the current checkout and runs the
// merge workflow.
func runIntegrate(cmd *cobra.Command, label, destination string) error {
	c, err := newContainer(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = c.logger.Sync() }()

	ctx := cmd.Context()
	cfg, err := c.integrateConfig(ctx, label, destination)
	if err != nil {
		return err
	}
	c.logger.Debug("starting run",
		zap.String("repository", cfg.Identity.String()),
		zap.String("base_ref", cfg.BaseRef),
		zap.String("graphql_url", c.cfg.GraphQLURL),
	)
	_, err = c.newOrchestrator(cmd.OutOrStdout()).Execute(ctx, cfg)
	return err
}
