// Package version resolves the latest published upstream version from
// repository tags.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// TagLister provides the tag names of the upstream repository.
type TagLister interface {
	ListTags() ([]string, error)
}

// Latest returns the maximum semantic version among the upstream tags,
// as its canonical string without the leading "v".
func Latest(lister TagLister) (string, error) {
	tags, err := lister.ListTags()
	if err != nil {
		return "", fmt.Errorf("failed to list upstream tags: %w", err)
	}

	max, err := maxVersion(tags)
	if err != nil {
		return "", err
	}

	return max.String(), nil
}

// maxVersion parses each tag as a semantic version and returns the maximum.
// Tags that do not parse are skipped; upstream occasionally carries
// non-release tags.
func maxVersion(tags []string) (*semver.Version, error) {
	var max *semver.Version

	for _, tag := range tags {
		v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		if max == nil || v.GreaterThan(max) {
			max = v
		}
	}

	if max == nil {
		return nil, fmt.Errorf("no valid semantic version among %d tags", len(tags))
	}

	return max, nil
}
