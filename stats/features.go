package stats

import (
	"templatestats/models"
)

// FeatureUsage counts templates using each template feature. The two sync
// fields count on any truthy value because providers commonly fill them with
// domain strings; warnPhishing and hostRequired are boolean switches and only
// count on exactly true. That asymmetry matches the source field conventions
// and must stay.
func FeatureUsage(templates []*models.Template) []models.FeatureCount {
	var syncPubKey, syncRedirect, warnPhishing, hostRequired int

	for _, t := range templates {
		if truthy(t.SyncPubKeyDomain) {
			syncPubKey++
		}
		if truthy(t.SyncRedirectDomain) {
			syncRedirect++
		}
		if t.WarnPhishing == true {
			warnPhishing++
		}
		if t.HostRequired == true {
			hostRequired++
		}
	}

	return []models.FeatureCount{
		{Name: "syncPubKeyDomain", Label: "syncPubKeyDomain", Count: syncPubKey},
		{Name: "syncRedirectDomain", Label: "syncRedirectDomain", Count: syncRedirect},
		{Name: "warnPhishing", Label: "warnPhishing", Count: warnPhishing},
		{Name: "hostRequired", Label: "hostRequired", Count: hostRequired},
	}
}

// truthy reports whether a decoded JSON value would count as present: false,
// null, empty string, zero and empty collections do not.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	case []any:
		return len(value) > 0
	case map[string]any:
		return len(value) > 0
	default:
		return true
	}
}
