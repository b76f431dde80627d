package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// AnalyzeController handles the "analyze" subcommand and the root shorthand.
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze <repository>",
		Short: "Analyze one remote repository",
		Long: `Walk a GitHub repository, download its source files and extract
imports, functions, classes, dependencies and HTTP API usage.
The aggregate is then summarized by the narrative service.

The repository may be given as https://github.com/owner/repo or owner/repo.`,
	}
}

// AddFlags has nothing to add: analyze only uses the persistent flags.
func (it *AnalyzeController) AddFlags(_ *cobra.Command) {}

// Execute analyzes the repository named by the single argument.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one repository, got %d", len(args))
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	analysis, err := it.command.Execute(ctx, settings, commands.AnalyzeOptions{Reference: args[0]})
	if err != nil {
		logger.Errorf("Analysis of %q failed: %v", args[0], err)
		return err
	}

	return writeAnalysis(cmd.OutOrStdout(), format, analysis)
}
