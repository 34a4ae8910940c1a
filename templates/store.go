// Package templates reads and parses the template files of a Domain Connect
// style repository: root-level JSON files, one provider/service pair each.
package templates

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"templatestats/logger"
	"templatestats/models"
)

// Manifest files living next to the templates that are never templates
// themselves.
var excludedFiles = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
}

// rawTemplate mirrors the loose on-disk schema. Fields the dashboard does not
// use are ignored by the decoder.
type rawTemplate struct {
	ProviderID         string      `json:"providerId"`
	ServiceID          string      `json:"serviceId"`
	ProviderName       string      `json:"providerName"`
	ServiceName        string      `json:"serviceName"`
	LogoURL            string      `json:"logoUrl"`
	Records            []rawRecord `json:"records"`
	SyncPubKeyDomain   any         `json:"syncPubKeyDomain"`
	SyncRedirectDomain any         `json:"syncRedirectDomain"`
	WarnPhishing       any         `json:"warnPhishing"`
	HostRequired       any         `json:"hostRequired"`
}

type rawRecord struct {
	Type string `json:"type"`
}

// ListFiles returns the template file paths directly under dir: every *.json
// except the package manifests, sorted by filename so every run sees the same
// order.
func ListFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range matches {
		if excludedFiles[filepath.Base(path)] {
			continue
		}
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})

	return files, nil
}

// Parse reads one template file. A file that cannot be read or decoded yields
// nil after a warning; one bad template must not sink the whole report.
func Parse(path string) *models.Template {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Could not read template",
			zap.String("file", filepath.Base(path)),
			zap.Error(err))
		return nil
	}

	var raw rawTemplate
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Could not parse template",
			zap.String("file", filepath.Base(path)),
			zap.Error(err))
		return nil
	}

	return &models.Template{
		Filename:           filepath.Base(path),
		ProviderID:         raw.ProviderID,
		ServiceID:          raw.ServiceID,
		ProviderName:       raw.ProviderName,
		ServiceName:        raw.ServiceName,
		LogoURL:            raw.LogoURL,
		RecordCount:        len(raw.Records),
		RecordTypes:        recordTypes(raw.Records),
		SyncPubKeyDomain:   raw.SyncPubKeyDomain,
		SyncRedirectDomain: raw.SyncRedirectDomain,
		WarnPhishing:       raw.WarnPhishing,
		HostRequired:       raw.HostRequired,
	}
}

// LogoURL reads just the logoUrl of the template at path, or nil when the
// file is absent or unparseable. Used to annotate pull request listings with
// the present-day logo.
func LogoURL(path string) *string {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	t := Parse(path)
	if t == nil || t.LogoURL == "" {
		return nil
	}
	return &t.LogoURL
}

// recordTypes collects the distinct record types appearing in a record list,
// keeping first-appearance order.
func recordTypes(records []rawRecord) []string {
	seen := make(map[string]bool)
	var types []string
	for _, r := range records {
		if r.Type == "" || seen[r.Type] {
			continue
		}
		seen[r.Type] = true
		types = append(types, r.Type)
	}
	return types
}
