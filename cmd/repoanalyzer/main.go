package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repoanalyzer/internal"
	"github.com/rios0rios0/repoanalyzer/internal/infrastructure/controllers"
)

func buildRootCommand(analyzeController *controllers.AnalyzeController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "repoanalyzer [repository]",
		Short: "Remote repository analysis engine",
		Long: `Analyze public GitHub repositories without cloning them.

The contents API is walked recursively, allow-listed files are downloaded,
and imports, functions, classes, requirements.txt dependencies and HTTP API
usage are extracted into a single sorted, deduplicated record. A narrative
report is then generated by Gemini.

Usage modes:
  repoanalyzer owner/repo                     Analyze one repository
  repoanalyzer analyze https://github.com/o/r Same, explicit subcommand
  repoanalyzer batch o/a o/b                  Analyze several repositories`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			return analyzeController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"Auth token for the GitHub API (overrides env var detection)")
	cmd.PersistentFlags().StringP("output", "o", "text",
		"Output format: text or json")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE:  controller.Execute,
		}
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	appContext, analyzeController := injectAppContext()
	cobraRoot := buildRootCommand(analyzeController)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'repoanalyzer': %s", err)
	}
}
