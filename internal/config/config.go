// Package config resolves rosepine's settings from defaults, the user config
// file, the nearest project config file, RP_* environment variables and CLI
// flags, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spf13/viper"

	"rosepine/internal/cache"
	appErrors "rosepine/internal/errors"
	"rosepine/internal/format"
	"rosepine/internal/generate"
	"rosepine/internal/parse"
)

const (
	KeyPrefix           = "prefix"
	KeySeparator        = "separator"
	KeySeperator        = "seperator" // Deprecated: misspelled key accepted from older configs; use KeySeparator.
	KeyDelimiter        = "delimiter"
	KeyFormat           = "format"
	KeyForceAlpha       = "force-alpha"
	KeyOut              = "out"
	KeyRecurse          = "recurse"
	KeyEngine           = "engine"
	KeyIncremental      = "incremental"
	KeyCachePath        = "cache.path"
	KeyDebug            = "debug.enabled"
	KeyDebugPath        = "debug.path"
	KeySkipVersionCheck = "skip-version-check"
)

const (
	// DirName holds both the user and the project config file.
	DirName = ".rosepine"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"

	// DefaultOut is the output directory when none is configured.
	DefaultOut = "dist"
	envPrefix  = "RP"
)

// writableKeys are persisted by WriteConfig.
var writableKeys = []string{
	KeyPrefix, KeySeparator, KeyDelimiter, KeyFormat, KeyForceAlpha,
	KeyOut, KeyRecurse, KeyEngine, KeyIncremental,
}

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// resolved paths, kept for WriteConfig
	userConfigPath    string
	projectConfigPath string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	v, err := getViper()
	if err != nil {
		return false
	}
	return v.GetBool(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// Settings is the typed view of the configuration.
type Settings struct {
	Generate         generate.Config
	Out              string
	Recurse          bool
	Incremental      bool
	CachePath        string
	Debug            bool
	DebugPath        string
	SkipVersionCheck bool
}

// Load validates the current configuration and converts it to Settings.
func Load() (Settings, error) {
	v, err := getViper()
	if err != nil {
		return Settings{}, err
	}
	configMu.RLock()
	defer configMu.RUnlock()

	prefix, err := singleRune(v, KeyPrefix)
	if err != nil {
		return Settings{}, err
	}
	separator, err := singleRune(v, KeySeparator)
	if err != nil {
		return Settings{}, err
	}
	if prefix == separator {
		return Settings{}, configError(fmt.Sprintf("%s and %s must differ (both %q)", KeyPrefix, KeySeparator, prefix), nil)
	}
	delimiter, err := parse.ParseDelimiter(v.GetString(KeyDelimiter))
	if err != nil {
		return Settings{}, configError(err.Error(), err)
	}
	f, err := format.Parse(v.GetString(KeyFormat))
	if err != nil {
		return Settings{}, configError(err.Error(), err)
	}
	engine, err := generate.ParseEngine(v.GetString(KeyEngine))
	if err != nil {
		return Settings{}, err
	}

	out := strings.TrimSpace(v.GetString(KeyOut))
	if out == "" {
		out = DefaultOut
	}
	cachePath := strings.TrimSpace(v.GetString(KeyCachePath))
	if cachePath == "" {
		cachePath = filepath.Join(out, cache.FileName)
	}

	return Settings{
		Generate: generate.Config{
			Parse: parse.Options{
				Prefix:    prefix,
				Separator: separator,
				Delimiter: delimiter,
			},
			Format:     f,
			ForceAlpha: v.GetBool(KeyForceAlpha),
			Engine:     engine,
		},
		Out:              out,
		Recurse:          v.GetBool(KeyRecurse),
		Incremental:      v.GetBool(KeyIncremental),
		CachePath:        cachePath,
		Debug:            v.GetBool(KeyDebug),
		DebugPath:        strings.TrimSpace(v.GetString(KeyDebugPath)),
		SkipVersionCheck: v.GetBool(KeySkipVersionCheck),
	}, nil
}

func singleRune(v *viper.Viper, key string) (rune, error) {
	raw := v.GetString(key)
	if utf8.RuneCountInString(raw) != 1 {
		return 0, configError(fmt.Sprintf("%s must be a single character, got %q", key, raw), nil)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if r == ' ' {
		return 0, configError(fmt.Sprintf("%s cannot be a space", key), nil)
	}
	return r, nil
}

func configError(msg string, err error) error {
	return appErrors.New(appErrors.CodeConfigurationError, msg, err)
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userPath := strings.TrimSpace(settings.userConfigPath)
	if userPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userPath = path
	}

	projectPath := strings.TrimSpace(settings.projectConfigPath)
	if projectPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectPath); err != nil {
		return fmt.Errorf("load project config: %w", err)
	}
	applyLegacySeparator(v)

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	userConfigPath = userPath
	projectConfigPath = projectPath
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName, FileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	defaults := parse.DefaultOptions()
	v.SetDefault(KeyPrefix, string(defaults.Prefix))
	v.SetDefault(KeySeparator, string(defaults.Separator))
	v.SetDefault(KeyDelimiter, defaults.Delimiter.String())
	v.SetDefault(KeyFormat, format.Hex.String())
	v.SetDefault(KeyForceAlpha, false)
	v.SetDefault(KeyOut, DefaultOut)
	v.SetDefault(KeyRecurse, false)
	v.SetDefault(KeyEngine, string(generate.EngineReplace))
	v.SetDefault(KeyIncremental, false)
	v.SetDefault(KeyCachePath, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyDebugPath, "")
	v.SetDefault(KeySkipVersionCheck, false)
}

// applyLegacySeparator honors the misspelled "seperator" key unless the
// correctly spelled key was given in a config file or the environment.
func applyLegacySeparator(v *viper.Viper) {
	if v == nil || !v.IsSet(KeySeperator) {
		return
	}
	if v.InConfig(KeySeparator) {
		return
	}
	if _, ok := os.LookupEnv(envKey(KeySeparator)); ok {
		return
	}
	v.Set(KeySeparator, v.GetString(KeySeperator))
}

func envKey(key string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return strings.ToUpper(envPrefix) + "_" + strings.ToUpper(replacer.Replace(key))
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPath = ""
	projectConfigPath = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, FileName)))
	return reset
}

// WriteConfig persists the effective generation settings as YAML. An empty
// path selects the project config when one was found, otherwise the user
// config. Other keys already in the target file are preserved. It returns the
// path written.
func WriteConfig(path string) (string, error) {
	v, err := getViper()
	if err != nil {
		return "", err
	}

	target := strings.TrimSpace(path)
	if target == "" {
		target = writableConfigPath()
	}
	if target == "" {
		return "", configError("no config path to write", nil)
	}

	out := viper.New()
	out.SetConfigType("yaml")
	out.SetConfigFile(target)
	_ = out.ReadInConfig() // missing file is fine

	configMu.RLock()
	for _, key := range writableKeys {
		out.Set(key, v.Get(key))
	}
	configMu.RUnlock()

	//nolint:gosec // G301: user config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := out.WriteConfigAs(target); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return target, nil
}

// writableConfigPath prefers the discovered project config over the user config.
func writableConfigPath() string {
	configMu.RLock()
	defer configMu.RUnlock()
	if projectConfigPath != "" {
		return projectConfigPath
	}
	return userConfigPath
}
