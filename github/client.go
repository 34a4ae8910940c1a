// Package github is a minimal GitHub REST v3 client covering the read-only
// endpoints the statistics report needs: pull requests, pull request files,
// reviews and contributors.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"templatestats/logger"
)

const defaultBaseURL = "https://api.github.com"

// Client represents a GitHub API client scoped to one repository. A missing
// token is allowed: requests go out unauthenticated and the stricter rate
// limits apply.
type Client struct {
	owner      string
	repo       string
	token      string
	httpClient *http.Client
	baseURL    *url.URL
	pageSize   int
}

// User is the author or reviewer shape embedded in API responses.
type User struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// PullRequest is the subset of the pulls endpoint the report consumes.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at"`
	User      User       `json:"user"`
	HTMLURL   string     `json:"html_url"`
	Labels    []Label    `json:"labels"`
}

// Label is a pull request label.
type Label struct {
	Name string `json:"name"`
}

// PullRequestFile is one changed file of a pull request.
type PullRequestFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// Review is one review event on a pull request.
type Review struct {
	User        User       `json:"user"`
	State       string     `json:"state"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

// Contributor is one entry of the contributors endpoint.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
}

// NewClient creates a client for owner/repo. When token is non-empty the
// underlying http.Client carries it via oauth2; either way requests time out
// after timeout.
func NewClient(owner, repo, token string, timeout time.Duration) *Client {
	baseURL, _ := url.Parse(defaultBaseURL)

	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = timeout
	}

	logger.Info("Initializing GitHub client",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Bool("authenticated", token != ""))

	return &Client{
		owner:      owner,
		repo:       repo,
		token:      token,
		httpClient: httpClient,
		baseURL:    baseURL,
		pageSize:   100,
	}
}

// HasToken reports whether the client was configured with an access token.
// Callers use this to skip whole sections rather than burn the anonymous
// rate limit.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// get performs one GET against the API. Every failure mode -- transport
// error, non-2xx status, undecodable body -- is logged as a warning and
// returned as nil: callers treat nil as "no data available" and degrade.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) json.RawMessage {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	if params != nil {
		reqURL.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		logger.Warn("GitHub API request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("GitHub API request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("GitHub API request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("GitHub API response unreadable",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil
	}

	return body
}

// paginate fetches every page of a list endpoint, starting at page 1 and
// stopping on an empty/failed page or one shorter than the page size. The
// loop is uncapped; repository collections are bounded.
func (c *Client) paginate(ctx context.Context, endpoint string, params url.Values) []json.RawMessage {
	if params == nil {
		params = url.Values{}
	}
	params.Set("per_page", strconv.Itoa(c.pageSize))

	var all []json.RawMessage
	for page := 1; ; page++ {
		params.Set("page", strconv.Itoa(page))

		body := c.get(ctx, endpoint, params)
		if body == nil {
			break
		}

		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			logger.Warn("GitHub API page undecodable",
				zap.String("endpoint", endpoint),
				zap.Int("page", page),
				zap.Error(err))
			break
		}
		if len(items) == 0 {
			break
		}

		all = append(all, items...)
		logger.Info("Fetched page",
			zap.String("endpoint", endpoint),
			zap.Int("page", page),
			zap.Int("items", len(items)),
			zap.Int("total", len(all)))

		if len(items) < c.pageSize {
			break
		}
	}

	return all
}

// decodeList decodes a slice of raw items into T, skipping items that do not
// decode.
func decodeList[T any](items []json.RawMessage, endpoint string) []T {
	var out []T
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			logger.Warn("Skipping undecodable item",
				zap.String("endpoint", endpoint),
				zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out
}

// PullRequests fetches every pull request matching state, ordered by the
// given sort key and direction. Empty sort/direction leave the API defaults.
func (c *Client) PullRequests(ctx context.Context, state, sort, direction string) []PullRequest {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls", c.owner, c.repo)
	params := url.Values{}
	params.Set("state", state)
	if sort != "" {
		params.Set("sort", sort)
	}
	if direction != "" {
		params.Set("direction", direction)
	}
	return decodeList[PullRequest](c.paginate(ctx, endpoint, params), endpoint)
}

// PullRequestFiles fetches the changed files of one pull request.
func (c *Client) PullRequestFiles(ctx context.Context, number int) []PullRequestFile {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/files", c.owner, c.repo, number)
	body := c.get(ctx, endpoint, nil)
	if body == nil {
		return nil
	}
	var files []PullRequestFile
	if err := json.Unmarshal(body, &files); err != nil {
		logger.Warn("Pull request files undecodable",
			zap.Int("number", number),
			zap.Error(err))
		return nil
	}
	return files
}

// Reviews fetches every review event of one pull request.
func (c *Client) Reviews(ctx context.Context, number int) []Review {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", c.owner, c.repo, number)
	return decodeList[Review](c.paginate(ctx, endpoint, nil), endpoint)
}

// Contributors fetches the repository contributor list.
func (c *Client) Contributors(ctx context.Context) []Contributor {
	endpoint := fmt.Sprintf("/repos/%s/%s/contributors", c.owner, c.repo)
	return decodeList[Contributor](c.paginate(ctx, endpoint, nil), endpoint)
}
