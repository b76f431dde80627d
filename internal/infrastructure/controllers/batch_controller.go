package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repoanalyzer/internal/domain/commands"
	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
)

// BatchController handles the "batch" subcommand.
type BatchController struct {
	command commands.Batch
}

// NewBatchController creates a new BatchController.
func NewBatchController(command commands.Batch) *BatchController {
	return &BatchController{command: command}
}

// GetBind returns the Cobra command metadata for the batch controller.
func (it *BatchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "batch [repository...]",
		Short: "Analyze several repositories in parallel",
		Long: `Analyze every repository given as argument, or the ones listed
under batch.repositories in the config file when none is given.

Each repository is analyzed independently: a failure is reported
and the remaining repositories still complete. With --fail-fast the
first failure cancels the analyses still running or queued.`,
	}
}

// AddFlags adds the batch-specific flags to the given Cobra command.
func (it *BatchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("parallelism", 0, "Repositories analyzed at once (default: batch.parallelism)")
	cmd.Flags().Bool("fail-fast", false, "Cancel the remaining repositories on the first failure and exit with an error")
}

// Execute runs the batch and prints every result.
func (it *BatchController) Execute(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if parallelism, _ := cmd.Flags().GetInt("parallelism"); parallelism > 0 {
		settings.Batch.Parallelism = parallelism
	}
	failFast, _ := cmd.Flags().GetBool("fail-fast")

	ctx, stop := signalContext(cmd)
	defer stop()

	results, err := it.command.Execute(ctx, settings, commands.BatchOptions{References: args, FailFast: failFast})
	if err != nil && results == nil {
		return err
	}

	if writeErr := writeBatch(cmd.OutOrStdout(), format, results); writeErr != nil {
		return writeErr
	}
	return err
}
