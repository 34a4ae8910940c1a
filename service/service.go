// Package service runs the whole statistics pipeline: scan and parse the
// template store, read git history, fetch PR/review/contributor data through
// the review cache, aggregate, and write the report. Everything is sequential
// and synchronous; a run either completes or is killed externally.
package service

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"templatestats/config"
	"templatestats/github"
	"templatestats/logger"
	"templatestats/models"
	"templatestats/report"
	"templatestats/stats"
	"templatestats/templates"
)

// Merged PRs shown in the recent listing.
const recentMergedLimit = 10

// Contributors kept in the report.
const contributorLimit = 50

// GitHubClient abstracts the GitHub API operations the service needs
// (for testability)
type GitHubClient interface {
	HasToken() bool
	PullRequests(ctx context.Context, state, sort, direction string) []github.PullRequest
	PullRequestFiles(ctx context.Context, number int) []github.PullRequestFile
	Reviews(ctx context.Context, number int) []github.Review
	Contributors(ctx context.Context) []github.Contributor
}

// HistoryReader abstracts the git history source (for testability)
type HistoryReader interface {
	History() []models.Commit
}

// ReviewStore abstracts the review cache (for testability)
type ReviewStore interface {
	Get(number int) ([]github.Review, bool)
	Put(number int, reviews []github.Review)
	Save() error
}

// Service generates one statistics report.
type Service struct {
	cfg     *config.Config
	owner   string
	repo    string
	client  GitHubClient
	history HistoryReader
	reviews ReviewStore
	now     func() time.Time
}

// New creates a service for the given repository and collaborators.
func New(cfg *config.Config, owner, repo string, client GitHubClient, history HistoryReader, reviews ReviewStore) *Service {
	return &Service{
		cfg:     cfg,
		owner:   owner,
		repo:    repo,
		client:  client,
		history: history,
		reviews: reviews,
		now:     time.Now,
	}
}

// Run generates the statistics report and writes it to the configured path.
func (s *Service) Run(ctx context.Context) error {
	logger.Info("Generating template repository statistics",
		zap.String("repo_owner", s.owner),
		zap.String("repo_name", s.repo),
		zap.String("folder", s.cfg.Folder))

	r, err := s.Generate(ctx)
	if err != nil {
		return err
	}

	if err := report.Write(r, s.cfg.OutputPath); err != nil {
		return err
	}

	logger.Info("Statistics generated",
		zap.Int("total_templates", r.Summary.TotalTemplates),
		zap.Int("total_providers", r.Summary.TotalProviders),
		zap.Int("total_contributors", r.Summary.TotalContributors))
	return nil
}

// Generate produces the full report document without writing it.
func (s *Service) Generate(ctx context.Context) (*report.Report, error) {
	now := s.now()

	tmpls, err := s.parseTemplates()
	if err != nil {
		return nil, err
	}

	logger.Info("Analyzing git history")
	commits := s.history.History()

	templatesGrowth, _ := stats.TemplateGrowth(commits)
	providersGrowth := stats.ProviderGrowth(commits, tmpls)

	var (
		allPRs       []github.PullRequest
		recentPRs    = []models.RecentPR{}
		contributors = []models.Contributor{}
		reviewsByPR  = map[int][]github.Review{}
	)

	if s.client.HasToken() {
		logger.Info("Fetching pull request data")
		open := s.client.PullRequests(ctx, "open", "created", "desc")
		closed := s.client.PullRequests(ctx, "closed", "created", "desc")
		allPRs = append(append([]github.PullRequest{}, open...), closed...)

		recentPRs = s.recentPullRequests(ctx, open)
		reviewsByPR = s.collectReviews(ctx, allPRs)

		logger.Info("Fetching contributor data")
		for _, c := range s.client.Contributors(ctx) {
			contributors = append(contributors, models.Contributor{
				Login:         c.Login,
				Contributions: c.Contributions,
				AvatarURL:     c.AvatarURL,
				ProfileURL:    c.HTMLURL,
			})
		}
	} else {
		logger.Warn("GITHUB_TOKEN not set; PR, review and contributor sections will be empty")
	}

	prActivity, totalMerged, totalOpen := stats.PRActivity(allPRs)
	allTimeReviewers, recentReviewers := stats.TopReviewers(allPRs, reviewsByPR, now)

	// The summary counts every contributor; only the exported list is capped.
	totalContributors := len(contributors)
	if len(contributors) > contributorLimit {
		contributors = contributors[:contributorLimit]
	}

	return &report.Report{
		GeneratedAt: now.Format(time.RFC3339),
		Repository: report.Repository{
			Owner: s.owner,
			Name:  s.repo,
			URL:   fmt.Sprintf("https://github.com/%s/%s", s.owner, s.repo),
		},
		Summary: report.Summary{
			TotalTemplates:        len(tmpls),
			TotalProviders:        countProviders(tmpls),
			TotalMergedPRs:        totalMerged,
			TotalOpenPRs:          totalOpen,
			TotalContributors:     totalContributors,
			AvgRecordsPerTemplate: avgRecords(tmpls),
		},
		TemplatesGrowth: templatesGrowth,
		ProvidersGrowth: providersGrowth,
		PRActivity:      prActivity,
		RecordTypes:     stats.RecordTypeDistribution(tmpls),
		TopProviders: report.ProviderBoards{
			AllTime:    stats.TopProviders(tmpls),
			Last30Days: stats.RecentProviders(tmpls, commits, now),
		},
		FeatureUsage: report.FeatureUsage{
			TotalTemplates: len(tmpls),
			Features:       stats.FeatureUsage(tmpls),
		},
		TopReviewers: report.ReviewerBoards{
			AllTime:    allTimeReviewers,
			Last30Days: recentReviewers,
		},
		RecentPRs:    recentPRs,
		Templates:    tmpls,
		Contributors: contributors,
	}, nil
}

// parseTemplates scans the template folder and parses every template file,
// skipping the ones that fail to parse.
func (s *Service) parseTemplates() ([]*models.Template, error) {
	logger.Info("Scanning template files")
	files, err := templates.ListFiles(s.cfg.Folder)
	if err != nil {
		return nil, fmt.Errorf("listing template files: %w", err)
	}

	logger.Info("Parsing templates", zap.Int("file_count", len(files)))
	var tmpls []*models.Template
	for _, path := range files {
		if t := templates.Parse(path); t != nil {
			tmpls = append(tmpls, t)
		}
	}
	return tmpls, nil
}

// recentPullRequests builds the recent PR listing: every open PR plus the 10
// most recently updated merged ones, each annotated with the template files
// it touches.
func (s *Service) recentPullRequests(ctx context.Context, open []github.PullRequest) []models.RecentPR {
	closed := s.client.PullRequests(ctx, "closed", "updated", "desc")

	var merged []github.PullRequest
	for _, pr := range closed {
		if pr.MergedAt != nil {
			merged = append(merged, pr)
			if len(merged) == recentMergedLimit {
				break
			}
		}
	}

	listing := make([]models.RecentPR, 0, len(open)+len(merged))
	for _, pr := range append(append([]github.PullRequest{}, open...), merged...) {
		listing = append(listing, s.annotatePR(ctx, pr))
	}
	return listing
}

// annotatePR converts one API pull request into its report entry, resolving
// the touched root-level template files to provider/service ids and a
// best-effort current logo.
func (s *Service) annotatePR(ctx context.Context, pr github.PullRequest) models.RecentPR {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.Name)
	}

	prTemplates := []models.PRTemplate{}
	for _, file := range s.client.PullRequestFiles(ctx, pr.Number) {
		if !strings.HasSuffix(file.Filename, ".json") || strings.Contains(file.Filename, "/") {
			continue
		}
		providerID, serviceID, ok := templates.SplitName(file.Filename)
		if !ok {
			continue
		}

		var logoURL *string
		if file.Status != "removed" {
			logoURL = templates.LogoURL(filepath.Join(s.cfg.Folder, file.Filename))
		}

		prTemplates = append(prTemplates, models.PRTemplate{
			ProviderID: providerID,
			ServiceID:  serviceID,
			Filename:   file.Filename,
			LogoURL:    logoURL,
			Status:     file.Status,
		})
	}

	var mergedAt *string
	if pr.MergedAt != nil {
		v := pr.MergedAt.UTC().Format(time.RFC3339)
		mergedAt = &v
	}

	return models.RecentPR{
		Number:       pr.Number,
		Title:        pr.Title,
		State:        pr.State,
		Merged:       pr.MergedAt != nil,
		CreatedAt:    pr.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    pr.UpdatedAt.UTC().Format(time.RFC3339),
		MergedAt:     mergedAt,
		Author:       pr.User.Login,
		AuthorAvatar: pr.User.AvatarURL,
		URL:          pr.HTMLURL,
		Labels:       labels,
		Templates:    prTemplates,
	}
}

// collectReviews returns the review lists of every merged PR, consulting the
// cache first and fetching only misses. The cache is saved afterwards when at
// least one miss occurred.
func (s *Service) collectReviews(ctx context.Context, prs []github.PullRequest) map[int][]github.Review {
	reviewsByPR := make(map[int][]github.Review)
	fetched := 0

	for i, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}

		if cached, ok := s.reviews.Get(pr.Number); ok {
			reviewsByPR[pr.Number] = cached
			continue
		}

		reviews := s.client.Reviews(ctx, pr.Number)
		s.reviews.Put(pr.Number, reviews)
		reviewsByPR[pr.Number] = reviews
		fetched++

		if fetched%20 == 0 {
			logger.Info("Fetching reviews",
				zap.Int("fetched", fetched),
				zap.Int("scanned", i+1),
				zap.Int("total_prs", len(prs)))
		}
	}

	if err := s.reviews.Save(); err != nil {
		logger.Warn("Could not save review cache", zap.Error(err))
	}
	return reviewsByPR
}

// countProviders counts the distinct provider ids across parsed templates.
func countProviders(tmpls []*models.Template) int {
	providers := make(map[string]bool)
	for _, t := range tmpls {
		if t.ProviderID != "" {
			providers[t.ProviderID] = true
		}
	}
	return len(providers)
}

// avgRecords is the mean record count per template, rounded to two decimals.
func avgRecords(tmpls []*models.Template) float64 {
	if len(tmpls) == 0 {
		return 0
	}
	total := 0
	for _, t := range tmpls {
		total += t.RecordCount
	}
	return math.Round(float64(total)/float64(len(tmpls))*100) / 100
}
