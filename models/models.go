// Package models defines the core data structures used throughout the application.
package models

// Template represents one parsed provider/service template file. The json
// tags cover the subset exported in the report's template list; raw feature
// values and record types only feed aggregation.
type Template struct {
	Filename     string `json:"filename"`
	ProviderID   string `json:"provider_id"`
	ServiceID    string `json:"service_id"`
	ProviderName string `json:"provider_name"`
	ServiceName  string `json:"service_name"`
	LogoURL      string `json:"logo_url"`
	RecordCount  int    `json:"record_count"`

	RecordTypes []string `json:"-"`

	// Feature fields keep whatever JSON value the template carried:
	// syncPubKeyDomain and syncRedirectDomain count as used when truthy,
	// warnPhishing and hostRequired only when boolean true.
	SyncPubKeyDomain   any `json:"-"`
	SyncRedirectDomain any `json:"-"`
	WarnPhishing       any `json:"-"`
	HostRequired       any `json:"-"`
}

// Commit represents one commit from the local git history. Date keeps git's
// short form (YYYY-MM-DD) since every consumer buckets or compares it as a
// string.
type Commit struct {
	Date   string
	Hash   string
	Author string
	Email  string
	Files  []string
}

// MonthlyGrowth is one point of a cumulative growth series.
type MonthlyGrowth struct {
	Month      string `json:"month"`
	Added      int    `json:"added"`
	Cumulative int    `json:"cumulative"`
}

// PRMonthly is one point of the PR activity series.
type PRMonthly struct {
	Month   string `json:"month"`
	Created int    `json:"created"`
	Merged  int    `json:"merged"`
}

// RecordTypeCount counts distinct templates containing a DNS record type.
type RecordTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ProviderRank is one leaderboard row of the top-provider tables.
type ProviderRank struct {
	ProviderID    string `json:"provider_id"`
	ProviderName  string `json:"provider_name"`
	LogoURL       string `json:"logo_url"`
	TemplateCount int    `json:"template_count"`
}

// FeatureCount counts templates using one template feature.
type FeatureCount struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReviewerRank is one leaderboard row of the top-reviewer tables.
type ReviewerRank struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	ProfileURL  string `json:"profile_url"`
	ReviewCount int    `json:"review_count"`
}

// Contributor represents a repository contributor as exported in the report.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url"`
	ProfileURL    string `json:"profile_url"`
}

// PRTemplate is a template file touched by a pull request, annotated with the
// ids derived from its filename and a best-effort current logo.
type PRTemplate struct {
	ProviderID string  `json:"provider_id"`
	ServiceID  string  `json:"service_id"`
	Filename   string  `json:"filename"`
	LogoURL    *string `json:"logo_url"`
	Status     string  `json:"status"`
}

// RecentPR is one entry of the recent pull request listing.
type RecentPR struct {
	Number       int          `json:"number"`
	Title        string       `json:"title"`
	State        string       `json:"state"`
	Merged       bool         `json:"merged"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	MergedAt     *string      `json:"merged_at"`
	Author       string       `json:"author"`
	AuthorAvatar string       `json:"author_avatar"`
	URL          string       `json:"url"`
	Labels       []string     `json:"labels"`
	Templates    []PRTemplate `json:"templates"`
}
