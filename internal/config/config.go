package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/usl-labs/usl/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each can be set in the config file or as USL_<KEY>.
const (
	KeyLibraryDir   = "library_dir"
	KeyLogLevel     = "log_level"
	KeyAssetsDir    = "assets_dir"
	KeyManifestFile = "manifest_file"
	KeyAssumeYes    = "assume_yes"
	KeyInitGit      = "init_git"
)

// Keys lists every setting key in display order.
var Keys = []string{
	KeyLibraryDir,
	KeyLogLevel,
	KeyAssetsDir,
	KeyManifestFile,
	KeyAssumeYes,
	KeyInitGit,
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	LibraryDir   string
	LogLevel     string
	AssetsDir    string // relative to the project root unless absolute
	ManifestFile string // relative to the project root unless absolute
	AssumeYes    bool
	InitGit      bool
}

// Dir returns the path to the usl config directory (~/.usl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the default config file
// (~/.usl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefaultLibraryDir returns the script library that ships next to the
// executable.
func DefaultLibraryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return branding.LibraryDir()
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), branding.LibraryDir())
}

// New returns a Viper instance reading configFile (or FilePath() when
// empty) from fsys, with defaults and USL_ environment overrides applied.
// A missing default config file is not an error; a missing explicit one is.
func New(fsys afero.Fs, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fsys)

	v.SetDefault(KeyLibraryDir, DefaultLibraryDir())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAssetsDir, "Assets")
	v.SetDefault(KeyManifestFile, filepath.Join("Packages", "manifest.json"))
	v.SetDefault(KeyAssumeYes, false)
	v.SetDefault(KeyInitGit, false)

	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		configFile = FilePath()
	}
	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)

	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	return v, nil
}

// Load resolves the settings held by v.
func Load(v *viper.Viper) Settings {
	return Settings{
		LibraryDir:   v.GetString(KeyLibraryDir),
		LogLevel:     v.GetString(KeyLogLevel),
		AssetsDir:    v.GetString(KeyAssetsDir),
		ManifestFile: v.GetString(KeyManifestFile),
		AssumeYes:    v.GetBool(KeyAssumeYes),
		InitGit:      v.GetBool(KeyInitGit),
	}
}

// IsKnownKey reports whether key is a setting usl reads.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair to the config file used by v and
// applies it to v. Only keys already in the file and the new key are
// written; defaults, environment and flag values stay out of the file.
func Set(fsys afero.Fs, v *viper.Viper, key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys, ", "))
	}

	configFile := v.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	dir := filepath.Dir(configFile)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	file := viper.New()
	file.SetFs(fsys)
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	v.Set(key, value)
	return nil
}
