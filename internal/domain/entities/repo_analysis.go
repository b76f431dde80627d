package entities

// RepoAnalysis is the aggregate record of one repository. Every collection is
// sorted and deduplicated, so identical input content yields an identical
// record apart from the narrative.
type RepoAnalysis struct {
	Name            string   `json:"name"`
	CommitCount     int      `json:"commit_count"`
	FileCount       int      `json:"file_count"`
	ImportedModules []string `json:"imported_modules"`
	Dependencies    []string `json:"dependencies"`
	APIs            []string `json:"apis"`
	Functions       []string `json:"functions"`
	Classes         []string `json:"classes"`
	Narrative       string   `json:"narrative"`
}

// WithNarrative returns a copy of the record carrying the given narrative.
func (a RepoAnalysis) WithNarrative(narrative string) RepoAnalysis {
	a.Narrative = narrative
	return a
}

// NarrativeFailurePrefix starts the placeholder stored in place of a
// narrative that could not be generated.
const NarrativeFailurePrefix = "Narrative generation failed: "

// DegradedNarrative renders the placeholder narrative for a failed
// generation, embedding the failure detail.
func DegradedNarrative(err error) string {
	return NarrativeFailurePrefix + err.Error()
}
