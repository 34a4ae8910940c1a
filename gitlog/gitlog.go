// Package gitlog shells out to git for the pieces of repository state the
// report needs: the full commit history of the template files and the remote
// configuration used to locate the GitHub repository.
package gitlog

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"templatestats/logger"
	"templatestats/models"
)

// Remote resolution errors. These are configuration failures and abort the
// run, unlike history failures which degrade to an empty series.
var (
	ErrNoRemotes       = errors.New("no git remotes configured")
	ErrMultipleRemotes = errors.New("multiple git remotes found")
	ErrRemoteNotFound  = errors.New("git remote not found")
	ErrBadRemoteURL    = errors.New("could not parse GitHub owner/repo from remote URL")
)

// Matches both https://github.com/owner/repo.git and git@github.com:owner/repo.
var remoteURLPattern = regexp.MustCompile(`github\.com[:/](.+?)/(.+?)(?:\.git)?$`)

// Reader reads git state from one repository working directory.
type Reader struct {
	dir string
}

// NewReader returns a Reader for the repository at dir.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// History returns every commit across all branches, newest first, with the
// JSON files each touched. Git failures are not fatal: the growth series just
// come out empty.
func (r *Reader) History() []models.Commit {
	cmd := exec.Command("git", "log", "--all", "--date=short",
		"--name-only", "--pretty=format:%ad|%H|%an|%ae")
	cmd.Dir = r.dir

	out, err := cmd.Output()
	if err != nil {
		logger.Warn("Could not read git history", zap.Error(err))
		return nil
	}

	commits := ParseLog(string(out))
	logger.Info("Read git history", zap.Int("commit_count", len(commits)))
	return commits
}

// ParseLog parses `git log --name-only` output in the pretty format above:
// one date|hash|author|email header per commit followed by the changed file
// paths, commits separated by blank lines. Only .json files are kept.
func ParseLog(out string) []models.Commit {
	var commits []models.Commit
	var current *models.Commit

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, "|") {
			parts := strings.Split(line, "|")
			if len(parts) == 4 {
				commits = append(commits, models.Commit{
					Date:   parts[0],
					Hash:   parts[1],
					Author: parts[2],
					Email:  parts[3],
				})
				current = &commits[len(commits)-1]
			}
			continue
		}

		if current != nil && strings.HasSuffix(line, ".json") {
			current.Files = append(current.Files, line)
		}
	}

	return commits
}

// ResolveRemote picks the remote to use when none was named: exactly one
// configured remote is required, anything else needs an explicit choice.
func (r *Reader) ResolveRemote() (string, error) {
	cmd := exec.Command("git", "remote")
	cmd.Dir = r.dir

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("listing git remotes: %w", err)
	}

	var remotes []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			remotes = append(remotes, line)
		}
	}

	switch len(remotes) {
	case 0:
		return "", ErrNoRemotes
	case 1:
		return remotes[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrMultipleRemotes, strings.Join(remotes, ", "))
	}
}

// RemoteURL returns the fetch URL of the named remote.
func (r *Reader) RemoteURL(remote string) (string, error) {
	cmd := exec.Command("git", "remote", "get-url", remote)
	cmd.Dir = r.dir

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRemoteNotFound, remote)
	}

	return strings.TrimSpace(string(out)), nil
}

// ParseOwnerRepo extracts the GitHub owner and repository name from a remote
// URL in either HTTPS or SSH form, with or without the .git suffix.
func ParseOwnerRepo(remoteURL string) (owner, repo string, err error) {
	m := remoteURLPattern.FindStringSubmatch(remoteURL)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadRemoteURL, remoteURL)
	}
	return m[1], m[2], nil
}
