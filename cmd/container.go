package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/integrate/internal/config"
	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/internal/orchestrator"
	"github.com/compozy/integrate/internal/repository"
	"github.com/compozy/integrate/internal/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	logger *zap.Logger

	gitRepo     *repository.LocalRepository
	ghRepo      repository.GithubRepository
	credentials repository.CredentialProvider
	lock        repository.RunLock
	gitSvc      service.GitService
}

// newContainer creates a new container with all the dependencies. Operator
// output of git goes to stdout and stderr, diagnostics go to stderr.
func newContainer(stdout, stderr io.Writer) (*container, error) {
	cfg, err := config.LoadConfig(repository.NewOsFileSystem())
	if err != nil {
		return nil, domain.NewConfigurationError("invalid configuration", err)
	}
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return nil, domain.NewConfigurationError("invalid configuration", err)
	}
	gitRepo, err := repository.NewGitRepositoryFromWorkingDir()
	if err != nil {
		return nil, domain.NewConfigurationError("not inside a git repository", err)
	}
	gitSvc := service.NewGitService(
		cfg.GitBinary,
		gitRepo.WorktreeRoot(),
		service.WithOutput(stdout, stderr),
		service.WithLogger(logger),
	)
	return &container{
		cfg:         cfg,
		logger:      logger,
		gitRepo:     gitRepo,
		ghRepo:      repository.NewGithubRepository(cfg.GraphQLURL, nil),
		credentials: repository.NewGitConfigCredentials(gitRepo.Repository()),
		lock:        repository.NewRunLock(gitRepo.GitDir()),
		gitSvc:      gitSvc,
	}, nil
}

func (c *container) newOrchestrator(out io.Writer) *orchestrator.IntegrateOrchestrator {
	return orchestrator.NewIntegrateOrchestrator(c.gitSvc, c.ghRepo, c.credentials, c.lock, out, c.logger)
}

// integrateConfig derives the repository identity and base ref from the
// checkout. Only local repository data is read.
func (c *container) integrateConfig(
	ctx context.Context,
	label, destination string,
) (orchestrator.IntegrateConfig, error) {
	remoteURL, err := c.gitRepo.RemoteURL(ctx, c.cfg.Remote)
	if err != nil {
		return orchestrator.IntegrateConfig{}, domain.NewConfigurationError(
			fmt.Sprintf("cannot read remote %q", c.cfg.Remote), err)
	}
	identity, err := domain.ParseRepositoryIdentity(remoteURL)
	if err != nil {
		return orchestrator.IntegrateConfig{}, domain.NewConfigurationError("cannot determine GitHub repository", err)
	}
	detected := ""
	if c.cfg.BaseBranch == "" {
		detected, err = c.gitRepo.DefaultBranch(ctx, c.cfg.Remote)
		if err != nil {
			return orchestrator.IntegrateConfig{}, domain.NewConfigurationError(
				"cannot detect the default branch, set base_branch", err)
		}
	}
	return orchestrator.IntegrateConfig{
		Label:       label,
		Destination: destination,
		Identity:    identity,
		BaseRef:     c.cfg.BaseRef(detected),
		Remote:      c.cfg.Remote,
	}, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
