//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/repoanalyzer/internal/domain/entities"
	"github.com/rios0rios0/repoanalyzer/test/domain/entitybuilders"
)

func TestClassifyFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		role     entities.FileRole
		ok       bool
	}{
		{name: "should classify python source", fileName: "main.py", role: entities.RoleSource, ok: true},
		{name: "should classify markdown", fileName: "README.md", role: entities.RoleSource, ok: true},
		{name: "should ignore extension case", fileName: "App.TS", role: entities.RoleSource, ok: true},
		{name: "should classify manifest", fileName: "requirements.txt", role: entities.RoleManifest, ok: true},
		{name: "should classify manifest ignoring case", fileName: "Requirements.TXT", role: entities.RoleManifest, ok: true},
		{name: "should skip other text files", fileName: "notes.txt", ok: false},
		{name: "should skip binaries", fileName: "logo.png", ok: false},
		{name: "should skip files without extension", fileName: "Makefile", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			fileName := tt.fileName

			// when
			role, ok := entities.ClassifyFile(fileName)

			// then
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.role, role)
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	t.Parallel()

	t.Run("should list the allow-list sorted", func(t *testing.T) {
		t.Parallel()

		// given
		expected := []string{".cpp", ".css", ".html", ".java", ".js", ".json", ".md", ".py", ".ts"}

		// when
		exts := entities.SupportedExtensions()

		// then
		assert.Equal(t, expected, exts)
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("should extract imports functions and classes from python", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().
			WithPath("pkg/app.py").
			WithContent("import os\nfrom foo.bar import baz\nimport numpy as np\n\nclass Greeter(Base):\n    def greet(self):\n        pass\n\nclass Plain:\n    pass\n\ndef main():\n    pass\n").
			BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Equal(t, []string{"os", "foo.bar", "numpy"}, result.Imports)
		assert.Equal(t, []string{"greet", "main"}, result.Functions)
		assert.Equal(t, []string{"Greeter", "Plain"}, result.Classes)
		assert.Empty(t, result.APIs)
		assert.Empty(t, result.Dependencies)
	})

	t.Run("should ignore indented imports", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().
			WithContent("def lazy():\n    import json\n").
			BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Empty(t, result.Imports)
		assert.Equal(t, []string{"lazy"}, result.Functions)
	})

	t.Run("should flag HTTP usage once per file", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().
			WithContent("import requests\nrequests.get(url)\nrequests.post(url)\n").
			BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Equal(t, []string{entities.HTTPAPILabel}, result.APIs)
	})

	t.Run("should flag HTTP usage in non-python sources", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().
			WithPath("web/client.js").
			WithContent("const r = await fetch('/api');\nfunction handler() {}\n").
			BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Equal(t, []string{entities.HTTPAPILabel}, result.APIs)
		assert.Empty(t, result.Functions)
		assert.Empty(t, result.Imports)
	})

	t.Run("should read dependencies from the manifest only", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().
			WithPath("requirements.txt").
			WithContent("requests==2.31.0\n# pinned\n\nFlask>=2.0\nnumpy<=1.26\n-r base.txt\nfetch-utils\n").
			BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Equal(t, []string{"requests", "flask", "numpy", "fetch-utils"}, result.Dependencies)
		assert.Empty(t, result.APIs)
		assert.Empty(t, result.Imports)
	})

	t.Run("should extract nothing from an empty file", func(t *testing.T) {
		t.Parallel()

		// given
		file := entitybuilders.NewFetchedFileBuilder().WithContent("").BuildFetchedFile()

		// when
		result := entities.Extract(file)

		// then
		assert.Equal(t, entities.ExtractionResult{}, result)
	})
}

func TestParseRequirementLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "should strip pinned version", line: "requests==2.31.0", expected: "requests"},
		{name: "should strip minimum version", line: "flask >= 2.0", expected: "flask"},
		{name: "should strip maximum version", line: "numpy<=1.26", expected: "numpy"},
		{name: "should cut at the earliest operator", line: "pkg>=1.0,<=2.0", expected: "pkg"},
		{name: "should keep unversioned names", line: "  Django  ", expected: "django"},
		{name: "should skip comments", line: "# just a comment", expected: ""},
		{name: "should skip blank lines", line: "   ", expected: ""},
		{name: "should skip pip options", line: "--index-url https://example.test", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			line := tt.line

			// when
			name := entities.ParseRequirementLine(line)

			// then
			assert.Equal(t, tt.expected, name)
		})
	}
}
