package templates

import "strings"

// SplitName derives the provider and service ids from a template filename:
// the segment before the first dot is the provider, the remaining segments
// joined by dots are the service. cloudflare.email.json is provider
// "cloudflare", service "email". Filenames without both parts report !ok.
func SplitName(filename string) (providerID, serviceID string, ok bool) {
	base := strings.TrimSuffix(filename, ".json")
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], "."), true
}
