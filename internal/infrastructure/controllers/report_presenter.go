package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// batchReport is the JSON shape of one batch entry.
type batchReport struct {
	Reference string                 `json:"reference"`
	Analysis  *entities.RepoAnalysis `json:"analysis,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected %q or %q)", format, outputText, outputJSON)
	}
}

// writeAnalysis renders one record in the requested format.
func writeAnalysis(w io.Writer, format string, analysis entities.RepoAnalysis) error {
	if format == outputJSON {
		return writeJSON(w, analysis)
	}

	text, err := renderAnalysis(analysis)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// writeBatch renders every batch entry, successes and failures alike.
func writeBatch(w io.Writer, format string, results []commands.BatchResult) error {
	if format == outputJSON {
		reports := make([]batchReport, 0, len(results))
		for _, result := range results {
			report := batchReport{Reference: result.Reference}
			if result.Err != nil {
				report.Error = result.Err.Error()
			} else {
				analysis := result.Analysis
				report.Analysis = &analysis
			}
			reports = append(reports, report)
		}
		return writeJSON(w, reports)
	}

	var sb strings.Builder
	for _, result := range results {
		if result.Err != nil {
			sb.WriteString(pterm.DefaultSection.Sprint(result.Reference))
			sb.WriteString(pterm.Error.Sprintln(result.Err.Error()))
			continue
		}
		text, err := renderAnalysis(result.Analysis)
		if err != nil {
			return err
		}
		sb.WriteString(text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func renderAnalysis(analysis entities.RepoAnalysis) (string, error) {
	data := pterm.TableData{
		{"Field", "Value"},
		{"Repository", analysis.Name},
		{"Commit Count", strconv.Itoa(analysis.CommitCount)},
		{"File Count", strconv.Itoa(analysis.FileCount)},
		{"Imported Modules", joinOrDash(analysis.ImportedModules)},
		{"Dependencies", joinOrDash(analysis.Dependencies)},
		{"APIs", joinOrDash(analysis.APIs)},
		{"Functions", joinOrDash(analysis.Functions)},
		{"Classes", joinOrDash(analysis.Classes)},
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render analysis table: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(pterm.DefaultSection.Sprint(analysis.Name))
	sb.WriteString(table)
	sb.WriteString("\n\n")
	sb.WriteString(analysis.Narrative)
	sb.WriteString("\n")
	return sb.String(), nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
