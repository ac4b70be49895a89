// Package cdn builds and verifies the published bundle URL for a given
// upstream version.
package cdn

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// URL formats the bundle address for a version using the configured template,
// e.g. "https://cdn.plot.ly/plotly-%s.js".
func URL(template, version string) string {
	return fmt.Sprintf(template, version)
}

// Verify performs a HEAD request and reports whether the URL resolves.
// Only an exact 200 counts; the client's default redirect handling applies.
func Verify(ctx context.Context, client *http.Client, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build HEAD request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("HEAD request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Nothing to do with a close error on a HEAD response

	return resp.StatusCode == http.StatusOK, nil
}

// ExtractURL finds the bundle URL currently embedded in the target file
// content, matching the template with any version string in place of the
// %s verb.
func ExtractURL(template, content string) (string, error) {
	pattern, err := templatePattern(template)
	if err != nil {
		return "", err
	}

	match := pattern.FindString(content)
	if match == "" {
		return "", fmt.Errorf("no CDN URL matching template %q found in target file", template)
	}

	return match, nil
}

// templatePattern compiles the URL template into a regexp with the version
// slot matching any semver-shaped string.
func templatePattern(template string) (*regexp.Regexp, error) {
	parts := strings.SplitN(template, "%s", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("cdn template %q must contain exactly one %%s", template)
	}

	expr := regexp.QuoteMeta(parts[0]) + `[0-9A-Za-z.+-]+` + regexp.QuoteMeta(parts[1])
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile cdn template pattern: %w", err)
	}

	return pattern, nil
}
