package main

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-devdir/internal/config"
	"github.com/NicabarNimble/go-devdir/internal/destination"
	"github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/git"
	"github.com/NicabarNimble/go-devdir/internal/gitconfig"
	"github.com/NicabarNimble/go-devdir/internal/github"
	"github.com/NicabarNimble/go-devdir/internal/logger"
	"github.com/NicabarNimble/go-devdir/internal/orchestrator"
	"github.com/NicabarNimble/go-devdir/internal/progress"
	"github.com/NicabarNimble/go-devdir/internal/prompt"
	"github.com/NicabarNimble/go-devdir/internal/token"
	"github.com/NicabarNimble/go-devdir/internal/urlutils"
)

type buildOptions struct {
	username    string
	destination string
	skip        string
	perPage     int
	token       string
	configPath  string
	logLevel    string
	yes         bool
}

var (
	// newPrompter allows for mocking in tests
	newPrompter = func() prompt.Prompter { return prompt.Stdio() }
	// newCloner allows for mocking in tests
	newCloner = func(stdout, stderr io.Writer, cfg *config.Config) orchestrator.Cloner {
		return &git.Cloner{Stdout: stdout, Stderr: stderr, Timeout: cfg.CloneTimeoutDuration()}
	}
	// ghCLISource allows for mocking in tests
	ghCLISource = func(host string) token.Source { return token.NewGHCLISource(host) }
	// gitConfigPath allows for mocking in tests
	gitConfigPath = gitconfig.DefaultPath
)

func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Clone all repositories of an account",
		Long: `Query the repositories owned by an account, show a summary and, after
confirmation, clone every repository not on the skip list into the destination
directory. An existing destination is only replaced when it is empty.`,
		Example: `  devdir build -u alice
  devdir build -u alice -d ~/src -s dotfiles,scratch
  devdir build -u alice --token "$GITHUB_TOKEN" --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.username, "username", "u", "", "Account whose repositories are cloned (prompted if empty)")
	f.StringVarP(&opts.destination, "destination", "d", "", "Destination directory (default \"Development\")")
	f.StringVarP(&opts.skip, "skip", "s", "", "Comma separated repository names to skip (default \"awesome-config,nvim-config,dotfiles\")")
	f.IntVar(&opts.perPage, "per-page", 0, "Maximum number of repositories to request (1-100)")
	f.StringVar(&opts.token, "token", "", "GitHub token (defaults to GIT_TOKEN_GITHUB, ~/.git-credentials, then a prompt)")
	f.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/devdir/config.yaml)")
	f.StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to every confirmation")

	return cmd
}

// loadBuildConfig reads the config file and applies the flags that were set
func loadBuildConfig(cmd *cobra.Command, opts *buildOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("destination") {
		cfg.Destination = opts.destination
	}
	if f.Changed("skip") {
		skip := opts.skip
		cfg.Skip = &skip
	}
	if f.Changed("per-page") {
		cfg.PerPage = opts.perPage
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func credentialSources(opts *buildOptions, cfg *config.Config, host string, p prompt.Prompter, log *logger.Logger) token.Source {
	var file token.Source
	path := cfg.CredentialsFile
	if path == "" {
		if def, err := token.DefaultCredentialsPath(); err == nil {
			path = def
		} else {
			log.Debug("no home directory; skipping credentials file", "error", err)
		}
	}
	if path != "" {
		file = token.NewFileSource(path)
	}

	var static token.Source
	if opts.token != "" {
		static = token.NewStaticSource(opts.token)
	}

	return token.NewChain(
		static,
		token.NewEnvSource("github"),
		file,
		ghCLISource(host),
		token.NewPromptSource(p),
	)
}

// askUsername prompts for the account. github.user from ~/.gitconfig, when
// set, is offered as the answer to an empty reply.
func askUsername(p prompt.Prompter, log *logger.Logger) (string, error) {
	var suggested string
	if path, err := gitConfigPath(); err == nil {
		suggested, err = gitconfig.GitHubUser(path)
		if err != nil {
			log.Warn("ignoring unreadable git config", "path", path, "error", err)
		}
	}

	label := "Username"
	if suggested != "" {
		label = fmt.Sprintf("Username [%s]", suggested)
	}

	account, err := p.Input(label)
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	if account == "" {
		account = suggested
	}
	if account == "" {
		return "", fmt.Errorf("username is required")
	}
	return account, nil
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	cfg, err := loadBuildConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logger.New(&logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	var p prompt.Prompter = newPrompter()
	if opts.yes {
		p = prompt.AssumeYes{Prompter: p}
	}

	log = log.With("run_id", uuid.NewString())

	account := opts.username
	if account == "" {
		if account, err = askUsername(p, log); err != nil {
			return err
		}
	}

	host := "github.com"
	if cfg.APIBaseURL != "" {
		u, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return fmt.Errorf("invalid api_base_url: %w", err)
		}
		host = u.Hostname()
		urlutils.AllowAPIHost(host)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	orch := &orchestrator.Orchestrator{
		Credentials: credentialSources(opts, cfg, host, p, log),
		NewCatalog: func(ctx context.Context, t token.Token) (orchestrator.Catalog, error) {
			return github.NewClient(ctx, t, github.Options{
				BaseURL:     cfg.APIBaseURL,
				HTTPTimeout: cfg.HTTPTimeoutDuration(),
				Logger:      log,
			})
		},
		Confirm:     p,
		Destination: destination.NewManager(p, log),
		Cloner:      newCloner(out, errOut, cfg),
		Reporter:    progress.NewConsoleReporter(out),
		Logger:      log,
	}

	summary, err := orch.Run(cmd.Context(), orchestrator.Options{
		Account:     account,
		Destination: cfg.Destination,
		SkipList:    cfg.SkipList(),
		PageSize:    cfg.PerPage,
	})
	if errors.IsCancelled(err) {
		fmt.Fprintln(out, "Cancelled.")
		return err
	}
	if err != nil {
		return err
	}

	if summary.Failed() {
		log.Warn("some repositories failed to clone", "failed", len(summary.Failures))
	}
	return nil
}
