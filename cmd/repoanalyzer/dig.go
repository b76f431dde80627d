package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repoanalyzer/internal"
	"github.com/rios0rios0/repoanalyzer/internal/infrastructure/controllers"
)

func injectAppContext() (*internal.AppInternal, *controllers.AnalyzeController) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal and the controller behind the root command
	var appInternal *internal.AppInternal
	var analyzeController *controllers.AnalyzeController
	if err := container.Invoke(func(ai *internal.AppInternal, ac *controllers.AnalyzeController) {
		appInternal = ai
		analyzeController = ac
	}); err != nil {
		panic(err)
	}

	return appInternal, analyzeController
}
