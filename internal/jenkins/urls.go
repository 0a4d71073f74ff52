package jenkins

import (
	"net/url"
	"strconv"
	"strings"
)

// NormalizeURL trims whitespace and guarantees exactly one trailing slash.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return strings.TrimRight(s, "/") + "/"
}

// JobURLFromBuild strips the trailing build number from a build URL.
// Returns the input unchanged when it doesn't end in a number.
func JobURLFromBuild(buildURL string) string {
	u := strings.TrimRight(strings.TrimSpace(buildURL), "/")
	idx := strings.LastIndex(u, "/")
	if idx < 0 {
		return NormalizeURL(buildURL)
	}
	if _, err := strconv.Atoi(u[idx+1:]); err != nil {
		return NormalizeURL(buildURL)
	}
	return NormalizeURL(u[:idx])
}

// ServerURLFrom returns the server root of any job or build URL, i.e. everything
// before the first "/job/" path segment.
func ServerURLFrom(resourceURL string) string {
	u := NormalizeURL(resourceURL)
	if idx := strings.Index(u, "/job/"); idx >= 0 {
		return u[:idx+1]
	}
	return u
}

// IsBuildURL reports whether the URL points at a specific build rather than a job.
func IsBuildURL(raw string) bool {
	return JobURLFromBuild(raw) != NormalizeURL(raw)
}

// ResolveURL joins a job path like "folder/job-name" onto the server URL.
// Full http(s) URLs are returned normalized as-is.
func ResolveURL(serverURL, target string) (string, error) {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		if _, err := url.Parse(target); err != nil {
			return "", err
		}
		return NormalizeURL(target), nil
	}

	base := NormalizeURL(serverURL)
	if _, err := url.Parse(base); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(base)
	parts := strings.Split(strings.Trim(target, "/"), "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		// Only a trailing number is a build; "job/2024/" is a valid job name.
		if _, err := strconv.Atoi(part); err == nil && i == len(parts)-1 && i > 0 {
			b.WriteString(part + "/")
			continue
		}
		b.WriteString("job/" + url.PathEscape(part) + "/")
	}
	return b.String(), nil
}
