package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultContentProvider   = "github"
	DefaultNarrativeProvider = "gemini"
	DefaultGitHubBaseURL     = "https://api.github.com/"
	DefaultNarrativeModel    = "gemini-2.0-flash"

	DefaultFetchTimeout     = 10 * time.Second
	DefaultNarrativeTimeout = 120 * time.Second
	DefaultRetryMax         = 3
	DefaultConcurrency      = 4
	DefaultMaxDepth         = 64
	DefaultBatchParallelism = 2
)

// Settings is the top-level configuration for repoanalyzer.
type Settings struct {
	Content   ContentSettings   `yaml:"content"`
	Narrative NarrativeSettings `yaml:"narrative"`
	Batch     BatchSettings     `yaml:"batch"`
}

// ContentSettings configures the repository host API used to walk and
// download repositories.
type ContentSettings struct {
	Provider          string        `yaml:"provider"`            // "github"
	Token             string        `yaml:"token"`               // Inline, ${ENV_VAR}, or file path
	BaseURL           string        `yaml:"base_url"`            // API root, e.g. https://api.github.com/
	Timeout           time.Duration `yaml:"timeout"`             // Per request
	RetryMax          int           `yaml:"retry_max"`           // Retries on transient failures
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 disables the limiter
	Burst             int           `yaml:"burst"`
	Concurrency       int           `yaml:"concurrency"` // In-flight listings/downloads per run
	MaxDepth          int           `yaml:"max_depth"`   // Directory nesting bound
}

// NarrativeSettings configures the external text-generation service.
type NarrativeSettings struct {
	Provider string        `yaml:"provider"` // "gemini"
	APIKey   string        `yaml:"api_key"`  // Inline, ${ENV_VAR}, or file path
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"` // Empty uses the SDK default
	Timeout  time.Duration `yaml:"timeout"`
	RetryMax int           `yaml:"retry_max"`
}

// BatchSettings lists repositories analyzed by the batch command.
type BatchSettings struct {
	Parallelism  int      `yaml:"parallelism"`
	Repositories []string `yaml:"repositories"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns settings usable without any config file.
// Credentials are picked up from the environment.
func NewDefaultSettings() *Settings {
	settings := &Settings{
		Content: ContentSettings{
			Provider:    DefaultContentProvider,
			BaseURL:     DefaultGitHubBaseURL,
			Timeout:     DefaultFetchTimeout,
			RetryMax:    DefaultRetryMax,
			Burst:       1,
			Concurrency: DefaultConcurrency,
			MaxDepth:    DefaultMaxDepth,
		},
		Narrative: NarrativeSettings{
			Provider: DefaultNarrativeProvider,
			Model:    DefaultNarrativeModel,
			Timeout:  DefaultNarrativeTimeout,
			RetryMax: DefaultRetryMax,
		},
		Batch: BatchSettings{
			Parallelism: DefaultBatchParallelism,
		},
	}
	settings.resolveCredentials()
	return settings
}

// NewSettings reads and parses a configuration file on top of the defaults,
// then resolves the credentials it names.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.resolveCredentials()

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings loads the given file, or the first file found by
// FindConfigFile, or falls back to defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		settings := NewDefaultSettings()
		return settings, validate(settings)
	}

	logger.Infof("Using config file: %s", found)
	return NewSettings(found)
}

// configFileNames are tried in each search directory, in order.
var configFileNames = []string{ //nolint:gochecknoglobals // lookup table
	"repoanalyzer.yaml",
	".repoanalyzer.yaml",
	"repoanalyzer.yml",
	".repoanalyzer.yml",
}

// configSearchDirs returns the working-directory candidates followed by the
// user's own config locations.
func configSearchDirs() []string {
	dirs := []string{".", "configs"}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "repoanalyzer"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir)
	}
	return dirs
}

// FindConfigFile returns the first config file found in the search directories.
func FindConfigFile() (string, error) {
	dirs := configSearchDirs()
	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf(
		"no %s found in %s",
		strings.Join(configFileNames, " or "), strings.Join(dirs, ", "),
	)
}

// credentialVariables lists, per provider, the conventional variables holding
// its credential, most specific first.
var credentialVariables = map[string][]string{ //nolint:gochecknoglobals // lookup table
	"github": {"GITHUB_TOKEN", "GH_TOKEN"},
	"gemini": {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// resolveCredentials replaces both configured credentials by their secrets.
func (s *Settings) resolveCredentials() {
	s.Content.Token = resolveCredential(s.Content.Token, providerCredential(s.Content.Provider))
	s.Narrative.APIKey = resolveCredential(s.Narrative.APIKey, providerCredential(s.Narrative.Provider))
}

// providerCredential looks up the first set conventional variable of provider.
func providerCredential(provider string) func() string {
	return func() string {
		for _, name := range credentialVariables[provider] {
			if value := os.Getenv(name); value != "" {
				logger.Debugf("Using %s credential from %s", provider, name)
				return value
			}
		}
		return ""
	}
}

// resolveCredential turns a configured credential into the secret itself.
// ${VAR} references are expanded, a value naming a regular file is replaced by
// the file's trimmed content, and an empty result falls back to the provider.
func resolveCredential(raw string, fallback func() string) string {
	value := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		resolved, ok := os.LookupEnv(name)
		if !ok {
			logger.Warnf("Credential references unset variable %q", name)
		}
		return resolved
	})

	if secret, ok := readSecretFile(value); ok {
		value = secret
	}
	if value == "" {
		value = fallback()
	}
	return value
}

func readSecretFile(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("Failed to read credential file %q: %v", path, err)
		return "", false
	}
	logger.Debugf("Read credential from file %q", path)
	return strings.TrimSpace(string(data)), true
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Content.Provider == "" {
		return errors.New("content.provider is required")
	}
	if settings.Content.Timeout <= 0 {
		return fmt.Errorf("content.timeout must be positive, got %s", settings.Content.Timeout)
	}
	if settings.Content.RetryMax < 0 {
		return fmt.Errorf("content.retry_max must not be negative, got %d", settings.Content.RetryMax)
	}
	if settings.Content.Concurrency < 1 {
		return fmt.Errorf("content.concurrency must be at least 1, got %d", settings.Content.Concurrency)
	}
	if settings.Content.MaxDepth < 1 {
		return fmt.Errorf("content.max_depth must be at least 1, got %d", settings.Content.MaxDepth)
	}
	if settings.Narrative.Provider == "" {
		return errors.New("narrative.provider is required")
	}
	if settings.Narrative.Timeout <= 0 {
		return fmt.Errorf("narrative.timeout must be positive, got %s", settings.Narrative.Timeout)
	}
	if settings.Batch.Parallelism < 1 {
		return fmt.Errorf("batch.parallelism must be at least 1, got %d", settings.Batch.Parallelism)
	}

	return nil
}
