package entities

import (
	"sort"
)

// Aggregate merges per-file extraction results into a RepoAnalysis with an
// empty narrative. files and extractions are index-aligned. The result does
// not depend on the order in which files are supplied.
//
// A run in which no source file survived the fetch stage fails with a
// *NoContentError: a record describing no code is not a meaningful success.
func Aggregate(
	ref RepositoryReference,
	commitCount int,
	files []FetchedFile,
	extractions []ExtractionResult,
) (RepoAnalysis, error) {
	fileCount := 0
	for _, file := range files {
		if file.Role.Has(RoleSource) {
			fileCount++
		}
	}
	if fileCount == 0 {
		return RepoAnalysis{}, &NoContentError{Repository: ref.FullName()}
	}

	var imports, dependencies, apis, functions, classes []string
	for _, extraction := range extractions {
		imports = append(imports, extraction.Imports...)
		dependencies = append(dependencies, extraction.Dependencies...)
		apis = append(apis, extraction.APIs...)
		functions = append(functions, extraction.Functions...)
		classes = append(classes, extraction.Classes...)
	}

	return RepoAnalysis{
		Name:            ref.FullName(),
		CommitCount:     commitCount,
		FileCount:       fileCount,
		ImportedModules: SortedUnique(imports),
		Dependencies:    SortedUnique(dependencies),
		APIs:            SortedUnique(apis),
		Functions:       SortedUnique(functions),
		Classes:         SortedUnique(classes),
	}, nil
}

// SortedUnique returns a new lexicographically sorted slice without
// duplicates. The result is never nil.
func SortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
