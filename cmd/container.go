package cmd

import (
	"fmt"

	"github.com/compozy/prscope/internal/config"
	"github.com/compozy/prscope/internal/logging"
	"github.com/compozy/prscope/internal/repository"
	"github.com/compozy/prscope/internal/service"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	logger *zap.Logger
	ghRepo repository.GithubRepository
	prSvc  service.PullRequestService
}

// containerFactory builds the container on first use so that commands which
// need no configuration, like version, still run without it.
type containerFactory func() (*container, error)

// newContainer creates a new container with all the dependencies.
func newContainer(fs afero.Fs) (*container, error) {
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	// GitHub repository is optional - without a token every call reports ErrGithubTokenRequired
	ghRepo := repository.NewGithubNoopRepository()
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(repository.GithubOptions{
			Token:            cfg.GithubToken,
			BaseURL:          cfg.GithubBaseURL,
			MaxRetries:       cfg.RetryCount,
			RetryDelay:       cfg.RetryDelay,
			MaxRateLimitWait: cfg.RateLimitMaxWait,
		})
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("no GitHub token configured; requests will fail")
	}

	prSvc, err := service.NewPullRequestService(ghRepo, cfg.GithubOwner, cfg.GithubRepo, logger,
		service.PullRequestServiceOptions{MaxConcurrentFetches: cfg.MaxConcurrentFetches})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request service: %w", err)
	}

	return &container{
		cfg:    cfg,
		logger: logger,
		ghRepo: ghRepo,
		prSvc:  prSvc,
	}, nil
}

// lazyContainer memoizes newContainer over the OS filesystem.
func lazyContainer() containerFactory {
	var (
		c   *container
		err error
	)
	return func() (*container, error) {
		if c == nil && err == nil {
			c, err = newContainer(afero.NewOsFs())
		}
		return c, err
	}
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	addCommands(rootCmd, lazyContainer())
	return nil
}

func addCommands(root *cobra.Command, deps containerFactory) {
	root.AddCommand(
		newListCmd(deps),
		newGetCmd(deps),
		newVersionCmd(),
	)
}
