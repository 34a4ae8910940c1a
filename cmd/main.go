package main

import (
	"os"

	"github.com/spf13/cobra"

	"templatestats/cache"
	"templatestats/config"
	"templatestats/github"
	"templatestats/gitlog"
	"templatestats/logger"
	"templatestats/service"
)

// rootCommand holds the flag values of the one and only command.
type rootCommand struct {
	folder    string
	repoOwner string
	repoName  string
	remote    string
	output    string
}

func newRootCommand() *cobra.Command {
	rc := &rootCommand{}

	cmd := &cobra.Command{
		Use:   "templatestats",
		Short: "Generate statistics for a Domain Connect templates repository",
		Long: `Aggregates template files, git history and GitHub pull request data
into a single JSON statistics report for the dashboard.

The GitHub repository is auto-detected from the git remote of the template
folder unless --repo-owner/--repo-name are given. Set GITHUB_TOKEN for the
PR, review and contributor sections.`,
		SilenceUsage: true,
		RunE:         rc.run,
	}

	cmd.Flags().StringVar(&rc.folder, "folder", "Templates", "Path to the templates repository folder")
	cmd.Flags().StringVar(&rc.repoOwner, "repo-owner", "", "GitHub repository owner (e.g. 'Domain-Connect')")
	cmd.Flags().StringVar(&rc.repoName, "repo-name", "", "GitHub repository name (e.g. 'Templates')")
	cmd.Flags().StringVar(&rc.remote, "remote", "", "Git remote name to use for auto-detection (e.g. 'upstream')")
	cmd.Flags().StringVar(&rc.output, "output", "", "Report output path (default docs/stats.json)")

	return cmd
}

func (rc *rootCommand) run(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Folder = rc.folder
	cfg.RepoOwner = rc.repoOwner
	cfg.RepoName = rc.repoName
	cfg.Remote = rc.remote
	cfg.OutputPath = rc.output
	cfg.Load()

	if err := cfg.Validate(); err != nil {
		return err
	}

	git := gitlog.NewReader(cfg.Folder)

	owner, repo := cfg.RepoOwner, cfg.RepoName
	if owner == "" {
		remote := cfg.Remote
		if remote == "" {
			var err error
			if remote, err = git.ResolveRemote(); err != nil {
				return err
			}
		}

		remoteURL, err := git.RemoteURL(remote)
		if err != nil {
			return err
		}
		if owner, repo, err = gitlog.ParseOwnerRepo(remoteURL); err != nil {
			return err
		}
	}

	client := github.NewClient(owner, repo, cfg.GitHubToken, cfg.RequestTimeout)
	reviews := cache.Load(cfg.CachePath)

	svc := service.New(cfg, owner, repo, client, git, reviews)
	return svc.Run(cmd.Context())
}

func main() {
	if err := logger.Initialize("info"); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
