package appConfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"gbm/internal/ext"
	logger "gbm/internal/log"
)

const (
	ConfigFileName = "gbm.yaml"
	DotEnvFileName = ".env"
)

const (
	EnvAPIURL             = "GITLAB_API_URL"
	EnvToken              = "GITLAB_PAT"
	EnvIncludeGroups      = "INCLUDE_GROUPS"
	EnvTemporaryBackupDir = "TEMPORARY_BACKUP_DIR"
	EnvArchiveDir         = "ARCHIVE_DIR"
	EnvGitExecutable      = "GIT_EXECUTABLE"
	EnvContinueOnError    = "CONTINUE_ON_ERROR"
	EnvLogFile            = "GBM_LOG_FILE"
)

type AppConfig struct {
	APIURL             string   `yaml:"apiUrl"`             // REST API root, e.g. https://gitlab.example.com/api/v4
	Token              string   `yaml:"token"`              // Private token sent with every request
	IncludeGroups      []string `yaml:"includeGroups"`      // Names of the groups to back up
	TemporaryBackupDir string   `yaml:"temporaryBackupDir"` // Root for ephemeral mirror clones
	ArchiveDir         string   `yaml:"archiveDir"`         // Root for the .tar.gz archives
	GitExecutable      string   `yaml:"gitExecutable"`
	ContinueOnError    bool     `yaml:"continueOnError"` // Keep going after a project fails and report all failures at the end
	LogFile            string   `yaml:"logFile"`
}

// ConfigError reports a required setting that is missing or a setting that cannot be parsed.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration value for %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("required configuration %s is not set", e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load builds the configuration from, in increasing precedence, the optional gbm.yaml (working
// directory, then home directory), a .env file in the working directory and the process
// environment.
func Load() (*AppConfig, error) {
	config := &AppConfig{}

	configFilePath, err := findConfigFile(ConfigFileName)
	if err != nil {
		return nil, err
	}
	if configFilePath != "" {
		if config, err = loadConfigFile(configFilePath); err != nil {
			return nil, err
		}
		logger.Log.Debugf("Loaded configuration file %s", configFilePath)
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(DotEnvFileName); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", DotEnvFileName, err)
		}
		logger.Log.Debugf("No %s file found, using environment variables", DotEnvFileName)
	}

	if err := config.applyEnvironment(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *AppConfig) applyEnvironment(lookup func(string) (string, bool)) error {
	overrides := map[string]*string{
		EnvAPIURL:             &config.APIURL,
		EnvToken:              &config.Token,
		EnvTemporaryBackupDir: &config.TemporaryBackupDir,
		EnvArchiveDir:         &config.ArchiveDir,
		EnvGitExecutable:      &config.GitExecutable,
		EnvLogFile:            &config.LogFile,
	}
	for key, target := range overrides {
		if value, ok := lookup(key); ok {
			*target = value
		}
	}

	if value, ok := lookup(EnvIncludeGroups); ok {
		config.IncludeGroups = ext.SplitList(value)
	}
	if value, ok := lookup(EnvContinueOnError); ok && value != "" {
		continueOnError, err := strconv.ParseBool(value)
		if err != nil {
			return &ConfigError{Key: EnvContinueOnError, Err: err}
		}
		config.ContinueOnError = continueOnError
	}
	return nil
}

// Validate checks that every required setting is present. Nothing else is checked.
func (config *AppConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{EnvAPIURL, config.APIURL},
		{EnvToken, config.Token},
		{EnvTemporaryBackupDir, config.TemporaryBackupDir},
		{EnvArchiveDir, config.ArchiveDir},
	}
	for _, setting := range required {
		if setting.value == "" {
			return &ConfigError{Key: setting.key}
		}
	}
	if len(config.IncludeGroups) == 0 {
		return &ConfigError{Key: EnvIncludeGroups}
	}
	return nil
}

func findConfigFile(configFileName string) (string, error) {
	candidates := []string{filepath.Join(".", configFileName)}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, configFileName))
	}
	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("could not access config file %s: %w", candidate, err)
		}
	}
	return "", nil
}

func loadConfigFile(configFilePath string) (*AppConfig, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var config AppConfig
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", configFilePath, err)
	}
	config.IncludeGroups = ext.SplitList(strings.Join(config.IncludeGroups, ","))
	return &config, nil
}
