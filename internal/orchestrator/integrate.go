package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/integrate/internal/config"
	"github.com/compozy/integrate/internal/domain"
	"github.com/compozy/integrate/internal/repository"
	"github.com/compozy/integrate/internal/service"
	"github.com/compozy/integrate/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntegrateConfig contains the inputs of a single merge run.
type IntegrateConfig struct {
	Label       string
	Destination string
	Identity    domain.RepositoryIdentity
	// BaseRef is the remote-tracking ref the destination is reset to, e.g. origin/main.
	BaseRef string
	Remote  string
}

// IntegrateOrchestrator merges every open pull request branch carrying a
// label into a freshly reset destination branch, stopping at the first
// branch that cannot be merged cleanly.
type IntegrateOrchestrator struct {
	gitSvc      service.GitService
	githubRepo  repository.GithubRepository
	credentials repository.CredentialProvider
	lock        repository.RunLock
	out         io.Writer
	logger      *zap.Logger
	newRunID    func() string
}

// NewIntegrateOrchestrator creates a new integrate orchestrator.
func NewIntegrateOrchestrator(
	gitSvc service.GitService,
	githubRepo repository.GithubRepository,
	credentials repository.CredentialProvider,
	lock repository.RunLock,
	out io.Writer,
	logger *zap.Logger,
) *IntegrateOrchestrator {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrateOrchestrator{
		gitSvc:      gitSvc,
		githubRepo:  githubRepo,
		credentials: credentials,
		lock:        lock,
		out:         out,
		logger:      logger,
		newRunID:    uuid.NewString,
	}
}

// Execute runs the workflow. The report is returned in every case so the
// caller can inspect how far the run got.
func (o *IntegrateOrchestrator) Execute(ctx context.Context, cfg IntegrateConfig) (*domain.RunReport, error) {
	report := domain.NewRunReport(o.newRunID(), cfg.Label, cfg.Destination)
	logger := o.logger.With(
		zap.String("run_id", report.RunID),
		zap.String("label", cfg.Label),
		zap.String("destination", cfg.Destination),
	)
	if err := o.run(ctx, cfg, report, logger); err != nil {
		report.Abort(err)
		fields := []zap.Field{zap.Strings("merged", report.Merged), zap.Error(err)}
		if report.MergeAttempted() {
			fields = append(fields, zap.String("outcome", report.Outcome.String()))
		}
		logger.Debug("run aborted", fields...)
		return report, err
	}
	report.Finish()
	logger.Info("run finished",
		zap.Strings("merged", report.Merged),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func (o *IntegrateOrchestrator) run(
	ctx context.Context,
	cfg IntegrateConfig,
	report *domain.RunReport,
	logger *zap.Logger,
) error {
	credential, err := o.prepare(ctx, cfg)
	if err != nil {
		return err
	}
	unlock, err := o.acquireLock()
	if err != nil {
		return err
	}
	defer unlock(logger)

	logger.Debug("fetching all remotes")
	if err := o.gitSvc.FetchAll(ctx); err != nil {
		return &domain.SubprocessError{Operation: OperationFetch, Err: err}
	}
	report.Enter(domain.RunStateFetched, "")

	reset := &usecase.ResetDestinationUseCase{GitSvc: o.gitSvc}
	if err := reset.Execute(ctx, cfg.Destination, cfg.BaseRef); err != nil {
		return err
	}
	report.Enter(domain.RunStateOnDestinationBranch, "")
	logger.Debug("destination reset", zap.String("base_ref", cfg.BaseRef))

	report.Enter(domain.RunStateResolving, "")
	resolve := &usecase.ResolveBranchesUseCase{GithubRepo: o.githubRepo}
	branches, err := resolve.Execute(ctx, cfg.Identity, cfg.Label, credential)
	if err != nil {
		return err
	}
	report.Branches = branches
	logger.Info("resolved branches",
		zap.String("repository", cfg.Identity.String()),
		zap.Strings("branches", branches),
	)
	return o.mergeAll(ctx, cfg, report, branches, logger)
}

// prepare validates the inputs and reads the credential. Nothing here
// touches the working tree or the network.
func (o *IntegrateOrchestrator) prepare(ctx context.Context, cfg IntegrateConfig) (string, error) {
	if cfg.Label == "" {
		return "", domain.NewConfigurationError("no github label provided", nil)
	}
	if cfg.Destination == "" {
		return "", domain.NewConfigurationError("no destination branch provided", nil)
	}
	if err := ValidateLabel(cfg.Label); err != nil {
		return "", domain.NewConfigurationError("invalid label", err)
	}
	if err := ValidateBranchName(cfg.Destination); err != nil {
		return "", domain.NewConfigurationError("invalid destination branch", err)
	}
	if cfg.BaseRef == "" {
		return "", domain.NewConfigurationError("no base branch to reset the destination to", nil)
	}
	if cfg.Identity.Owner == "" || cfg.Identity.Name == "" {
		return "", domain.NewConfigurationError(
			fmt.Sprintf("incomplete repository identity %q", cfg.Identity.String()), nil)
	}
	credential, err := o.credentials.FetchCredential(ctx, config.CredentialKey)
	if err != nil {
		return "", domain.NewConfigurationError(
			fmt.Sprintf("missing GitHub token, set it with 'git config --global %s <token>'", config.CredentialKey),
			err,
		)
	}
	if err := config.ValidateToken(credential); err != nil {
		return "", domain.NewConfigurationError("invalid GitHub token", err)
	}
	return credential, nil
}

func (o *IntegrateOrchestrator) acquireLock() (func(*zap.Logger), error) {
	if o.lock == nil {
		return func(*zap.Logger) {}, nil
	}
	locked, err := o.lock.TryLock()
	if err != nil {
		return nil, domain.NewConfigurationError("failed to acquire run lock", err)
	}
	if !locked {
		return nil, domain.NewConfigurationError(
			fmt.Sprintf("another run is in progress (lock held on %s)", o.lock.Path()),
			nil,
		)
	}
	return func(logger *zap.Logger) {
		if err := o.lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", zap.String("path", o.lock.Path()), zap.Error(err))
		}
	}, nil
}

func (o *IntegrateOrchestrator) mergeAll(
	ctx context.Context,
	cfg IntegrateConfig,
	report *domain.RunReport,
	branches []string,
	logger *zap.Logger,
) error {
	merge := &usecase.MergeBranchUseCase{GitSvc: o.gitSvc, Remote: cfg.Remote}
	for _, branch := range branches {
		report.Enter(domain.RunStateMergingBranch, branch)
		fmt.Fprintf(o.out, MergingFormat, branch)
		result, err := merge.Execute(ctx, branch)
		if err != nil {
			return err
		}
		report.Outcome = result.Outcome
		switch result.Outcome {
		case domain.OutcomeConflict:
			o.printConflict(result.ConflictedPaths)
			return &domain.ConflictError{Branch: branch, Paths: result.ConflictedPaths}
		case domain.OutcomeCommitFailed:
			fmt.Fprintf(o.out, CommitFailureFormat, branch)
			return &domain.SubprocessError{Operation: OperationCommit, Branch: branch, Err: result.CommitErr}
		}
		if result.MergeErr != nil {
			logger.Debug("merge finalized with commit", zap.String("branch", branch), zap.Error(result.MergeErr))
		}
		report.MarkMerged(branch)
	}
	if len(branches) == 0 {
		logger.Info("no open pull requests carry the label")
	}
	return nil
}

func (o *IntegrateOrchestrator) printConflict(paths []string) {
	fmt.Fprintln(o.out, "\nConflicted paths:")
	for _, p := range paths {
		fmt.Fprintf(o.out, "  %s\n", p)
	}
	fmt.Fprint(o.out, ConflictGuidance)
}
