// Package config provides the configuration loader for knit.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the knit.yaml schema version this loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads knit.yaml at or above cwd and returns a domain.BundleConfig with absolute paths.
// Without a config file the result is an empty configuration rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.BundleConfig, error) {
	configPath, err := l.findConfiguration(cwd)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return &domain.BundleConfig{
			Root:       filepath.Clean(cwd),
			Format:     domain.FormatESM,
			Duplicates: domain.DuplicateLastWins,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var knitfile Knitfile
	if err := readAndUnmarshalYAML(configPath, &knitfile); err != nil {
		return nil, err
	}

	if knitfile.Version != "" && knitfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q",
			configPath, knitfile.Version, SupportedVersion))
	}

	return buildConfig(configPath, &knitfile)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", domain.NewError(domain.ErrConfigNotFound, nil, "cwd", cwd)
}

func buildConfig(configPath string, knitfile *Knitfile) (*domain.BundleConfig, error) {
	format, err := domain.ParseFormat(knitfile.Format)
	if err != nil {
		return nil, annotate(err, configPath)
	}

	duplicates, err := domain.ParseDuplicatePolicy(knitfile.Duplicates)
	if err != nil {
		return nil, annotate(err, configPath)
	}

	root := resolveRoot(configPath, knitfile.Root)

	entries := make([]string, 0, len(knitfile.Entries))
	for _, entry := range knitfile.Entries {
		entries = append(entries, rebase(root, entry))
	}

	return &domain.BundleConfig{
		Root:                root,
		Output:              rebase(root, knitfile.Output),
		SourceMap:           rebase(root, knitfile.SourceMap),
		Format:              format,
		Minify:              knitfile.Minify,
		Packages:            knitfile.Packages,
		Entries:             entries,
		Duplicates:          duplicates,
		StrictAbsolutePaths: knitfile.StrictAbsolutePaths,
	}, nil
}

func annotate(err error, configPath string) error {
	return domain.NewError(domain.ErrConfigParseFailed, err, "config", configPath)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return rebase(configDir, configuredRoot)
}

// rebase makes path absolute against base. The empty path stays empty.
func rebase(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// Unknown keys are rejected and an empty file decodes to the zero value.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return domain.NewError(domain.ErrConfigReadFailed, err, "config", configPath)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewError(domain.ErrConfigParseFailed, err, "config", configPath)
	}

	return nil
}
