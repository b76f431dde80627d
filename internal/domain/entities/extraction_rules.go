package entities

import (
	"regexp"
	"strings"
)

const (
	// ManifestFileName is the dependency manifest, matched case-insensitively.
	ManifestFileName = "requirements.txt"

	// HTTPAPILabel is the single label contributed by the HTTP call heuristic.
	HTTPAPILabel = "HTTP API calls detected"
)

// ExtractionResult holds the structural signals of one file. Results are
// merged by Aggregate and never exposed individually.
type ExtractionResult struct {
	Imports      []string
	Functions    []string
	Classes      []string
	Dependencies []string
	APIs         []string
}

// ExtractionRule derives one category of metadata from a file's raw text.
// Rules never fail: absent patterns simply add nothing.
type ExtractionRule func(content string, result *ExtractionResult)

var (
	pythonImportPattern   = regexp.MustCompile(`(?m)^(?:import|from)[ \t]+([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)(?:[ \t]+import|[ \t]+as|[ \t]*,|[ \t]*\r?$)`)
	pythonFunctionPattern = regexp.MustCompile(`def\s+(\w+)\s*\(`)
	pythonClassPattern    = regexp.MustCompile(`class\s+(\w+)\s*(?:\(|:)`)

	// versionOperators split a requirement line; the earliest match wins.
	versionOperators = []string{"==", ">=", "<="} //nolint:gochecknoglobals // read-only

	// httpCallMarkers are the substrings that flag outbound HTTP usage.
	httpCallMarkers = []string{"requests.get", "requests.post", "fetch", "axios"} //nolint:gochecknoglobals // read-only
)

// sourceRules maps every allow-listed extension to its ordered extraction
// rules. An extension with no rules is still downloaded, counted and scanned
// by commonSourceRules.
//
//nolint:gochecknoglobals // read-only rule table
var sourceRules = map[string][]ExtractionRule{
	".py":   {extractPythonImports, extractPythonFunctions, extractPythonClasses},
	".js":   nil,
	".ts":   nil,
	".java": nil,
	".cpp":  nil,
	".html": nil,
	".css":  nil,
	".json": nil,
	".md":   nil,
}

//nolint:gochecknoglobals // read-only rule table
var (
	commonSourceRules = []ExtractionRule{detectHTTPCalls}
	manifestRules     = []ExtractionRule{extractRequirements}
)

// ClassifyFile decides whether a file is worth downloading and in which role.
// Files outside the allow-list that are not the manifest return false.
func ClassifyFile(name string) (FileRole, bool) {
	var role FileRole
	if _, ok := sourceRules[FileExtension(name)]; ok {
		role |= RoleSource
	}
	if strings.EqualFold(name, ManifestFileName) {
		role |= RoleManifest
	}
	return role, role != 0
}

// SupportedExtensions returns the allow-listed source extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(sourceRules))
	for ext := range sourceRules {
		exts = append(exts, ext)
	}
	return SortedUnique(exts)
}

// Extract applies the rules matching the file's role and extension. A file
// that is both a source file and the manifest gets both rule sets.
func Extract(file FetchedFile) ExtractionResult {
	var result ExtractionResult

	if file.Role.Has(RoleSource) {
		for _, rule := range sourceRules[file.Extension] {
			rule(file.Content, &result)
		}
		for _, rule := range commonSourceRules {
			rule(file.Content, &result)
		}
	}
	if file.Role.Has(RoleManifest) {
		for _, rule := range manifestRules {
			rule(file.Content, &result)
		}
	}

	return result
}

func extractPythonImports(content string, result *ExtractionResult) {
	result.Imports = append(result.Imports, firstGroups(pythonImportPattern, content)...)
}

func extractPythonFunctions(content string, result *ExtractionResult) {
	result.Functions = append(result.Functions, firstGroups(pythonFunctionPattern, content)...)
}

func extractPythonClasses(content string, result *ExtractionResult) {
	result.Classes = append(result.Classes, firstGroups(pythonClassPattern, content)...)
}

// detectHTTPCalls is a coarse substring heuristic, not a parser.
func detectHTTPCalls(content string, result *ExtractionResult) {
	for _, marker := range httpCallMarkers {
		if strings.Contains(content, marker) {
			result.APIs = append(result.APIs, HTTPAPILabel)
			return
		}
	}
}

// extractRequirements reads a pip requirements file line by line.
func extractRequirements(content string, result *ExtractionResult) {
	for _, line := range strings.Split(content, "\n") {
		if name := parseRequirementLine(line); name != "" {
			result.Dependencies = append(result.Dependencies, name)
		}
	}
}

// parseRequirementLine returns the package name of one requirement line, or
// an empty string for blank lines, comments and pip options ("-r", "--index-url").
func parseRequirementLine(line string) string {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
		return ""
	}

	cut := len(line)
	for _, op := range versionOperators {
		if idx := strings.Index(line, op); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(line[:cut])
}

func firstGroups(pattern *regexp.Regexp, content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	groups := make([]string, 0, len(matches))
	for _, m := range matches {
		groups = append(groups, m[1])
	}
	return groups
}
