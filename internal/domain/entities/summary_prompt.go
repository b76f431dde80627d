package entities

import (
	"fmt"
	"strings"
)

const (
	noneFound = "None found"

	narrativeInstructions = `Your analysis must include:
1. **Purpose and Functionality**: Describe the overall goal of the repository, its intended use, and how it functions (e.g., types of components, system architecture).
2. **Frameworks, APIs, and Key Components**: Identify all frameworks, libraries, APIs, key functions, and classes, explaining their roles.
3. **File-by-File Breakdown**: For each file, detail its purpose, contents (e.g., functions, classes, key logic), and how it contributes to the project.
4. **Code Quality and Structure**: Assess readability, maintainability, modularity, and adherence to best practices.
5. **Unique Features and Notable Details**: Highlight any standout features, innovative approaches, or important implementation details.
Ensure the analysis is comprehensive, specific, and covers all aspects of the repository.`
)

// BuildSummaryPrompt renders the aggregate and the raw content of every
// source file into the single text blob sent to the narrative service.
func BuildSummaryPrompt(analysis RepoAnalysis, files []FetchedFile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"Provide a detailed analysis of the GitHub repository '%s'. "+
			"Use the following content, which includes all files, their code, and extracted metadata:\n\n",
		analysis.Name,
	)
	sb.WriteString(BuildAnalysisDigest(analysis, files))
	sb.WriteString("\n\n")
	sb.WriteString(narrativeInstructions)

	return sb.String()
}

// BuildAnalysisDigest renders the metadata header followed by every source
// file fenced by its name.
func BuildAnalysisDigest(analysis RepoAnalysis, files []FetchedFile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Repository: %s\n", analysis.Name)
	fmt.Fprintf(&sb, "Commit Count: %d\n", analysis.CommitCount)
	fmt.Fprintf(&sb, "File Count: %d\n", analysis.FileCount)
	fmt.Fprintf(&sb, "Imported Modules: %s\n", strings.Join(analysis.ImportedModules, ", "))
	fmt.Fprintf(&sb, "Dependencies (from %s): %s\n", ManifestFileName, joinOrNone(analysis.Dependencies))
	fmt.Fprintf(&sb, "APIs Detected: %s\n", strings.Join(analysis.APIs, ", "))
	fmt.Fprintf(&sb, "Functions: %s\n", strings.Join(analysis.Functions, ", "))
	fmt.Fprintf(&sb, "Classes: %s\n\n", strings.Join(analysis.Classes, ", "))

	for _, file := range files {
		if !file.Role.Has(RoleSource) {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n```%s\n%s\n```\n\n\n",
			file.Path, strings.TrimPrefix(file.Extension, "."), file.Content,
		)
	}

	return sb.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return noneFound
	}
	return strings.Join(values, ", ")
}
