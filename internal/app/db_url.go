package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL tags connections with application_name unless the URL
// already sets one. Both URL and key=value DSNs are accepted.
func normalizeDBURL(raw, applicationName string) string {
	raw = strings.TrimSpace(raw)
	applicationName = strings.TrimSpace(applicationName)
	if raw == "" || applicationName == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get("application_name") == "" {
			query.Set("application_name", applicationName)
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	for _, token := range strings.Fields(raw) {
		if strings.HasPrefix(token, "application_name=") {
			return raw
		}
	}
	return raw + " application_name=" + applicationName
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
