package entities

import (
	"strings"
)

// knownHostPrefixes are stripped from a raw reference before it is split.
// Longer prefixes come first so that "https://www.github.com/" wins over
// "github.com/".
//
//nolint:gochecknoglobals // read-only lookup table
var knownHostPrefixes = []string{
	"https://www.github.com/",
	"http://www.github.com/",
	"https://github.com/",
	"http://github.com/",
	"ssh://git@github.com/",
	"git@github.com:",
	"www.github.com/",
	"github.com/",
}

// RepositoryReference is the normalized owner/name pair of a remote repository.
type RepositoryReference struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" form of the reference.
func (r RepositoryReference) FullName() string {
	return r.Owner + "/" + r.Name
}

// NormalizeReference derives a RepositoryReference from a URL-like string.
// Accepted forms are "https://github.com/owner/repo" (optionally with a
// trailing ".git" or "/") and the bare "owner/repo". Anything else yields an
// *InvalidReferenceError; a partially populated reference is never returned.
func NormalizeReference(raw string) (RepositoryReference, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return RepositoryReference{}, &InvalidReferenceError{Raw: raw, Reason: "empty reference"}
	}

	lower := strings.ToLower(cleaned)
	for _, prefix := range knownHostPrefixes {
		if strings.HasPrefix(lower, prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}
	if strings.Contains(cleaned, "://") {
		return RepositoryReference{}, &InvalidReferenceError{Raw: raw, Reason: "unsupported host"}
	}

	cleaned = strings.Trim(cleaned, "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 { //nolint:mnd // owner/name
		return RepositoryReference{}, &InvalidReferenceError{Raw: raw, Reason: "expected exactly owner and name"}
	}

	owner := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if owner == "" || name == "" {
		return RepositoryReference{}, &InvalidReferenceError{Raw: raw, Reason: "owner and name must be non-empty"}
	}
	if strings.ContainsAny(owner+name, " \t?#") {
		return RepositoryReference{}, &InvalidReferenceError{Raw: raw, Reason: "owner or name contains invalid characters"}
	}

	return RepositoryReference{Owner: owner, Name: name}, nil
}
