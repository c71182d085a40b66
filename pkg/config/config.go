// Package config provides types and functions for loading, saving, and
// applying defaults to the .mdj/config.json project configuration file.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// requiredTopLevelKeys lists the JSON keys that must be present at the top
// level for a config.json to be considered up-to-date.
var requiredTopLevelKeys = []string{
	"version",
	"output_dir",
}

// requiredTagsKeys lists the JSON keys required in the "tags" object.
var requiredTagsKeys = []string{
	"ordering",
}

// requiredSearchKeys lists the JSON keys required in the "search" object.
var requiredSearchKeys = []string{
	"mode",
	"ordering",
	"presets_file",
}

// requiredTasksKeys lists the JSON keys required in the "tasks" object.
var requiredTasksKeys = []string{
	"filter",
	"ordering",
}

const (
	DirName           = ".mdj"
	ConfigFileName    = "config.json"
	SearchPresetsName = "search-presets.yaml"
)

// TagsConfig holds the default ordering for `mdj tags`.
type TagsConfig struct {
	// Ordering is "alphabetic" or "count".
	Ordering string `json:"ordering"`
}

// SearchConfig holds defaults for `mdj search`.
type SearchConfig struct {
	// Mode is "and" or "or".
	Mode string `json:"mode"`
	// Ordering is "relevance" or "date".
	Ordering string `json:"ordering"`
	// PresetsFile is the path, relative to the project's .mdj directory, of the named
	// search-preset definitions used by `mdj search --preset`.
	PresetsFile string `json:"presets_file"`
}

// TreeConfig holds defaults for `mdj tree`.
type TreeConfig struct {
	// Debug, when true, makes `mdj tree` print token-level debug strings
	// instead of rendered markdown by default.
	Debug bool `json:"debug"`
}

// TasksConfig holds defaults for `mdj tasks`.
type TasksConfig struct {
	// Filter is "all", "unfinished", or "finished".
	Filter string `json:"filter"`
	// Ordering is "urgency" or "occurence".
	Ordering string `json:"ordering"`
}

// Config represents the contents of .mdj/config.json.
type Config struct {
	Version   string       `json:"version"`
	Project   string       `json:"project"`
	OutputDir string       `json:"output_dir"`
	Tags      TagsConfig   `json:"tags"`
	Search    SearchConfig `json:"search"`
	Tree      TreeConfig   `json:"tree"`
	Tasks     TasksConfig  `json:"tasks"`
}

// Default returns a Config populated with sensible default values.
func Default(projectName string) Config {
	return Config{
		Version:   "1",
		Project:   projectName,
		OutputDir: ".",
		Tags: TagsConfig{
			Ordering: "alphabetic",
		},
		Search: SearchConfig{
			Mode:        "or",
			Ordering:    "date",
			PresetsFile: SearchPresetsName,
		},
		Tree: TreeConfig{
			Debug: false,
		},
		Tasks: TasksConfig{
			Filter:   "unfinished",
			Ordering: "occurence",
		},
	}
}

// ConfigPath returns the path to config.json given the project root.
func ConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, DirName, ConfigFileName)
}

// PresetsPath returns the path to the search-presets file for cfg, resolved
// against projectRoot.
func PresetsPath(projectRoot string, cfg Config) string {
	return filepath.Join(projectRoot, DirName, cfg.Search.PresetsFile)
}

// Load reads and parses config.json from the given project root. If the
// file does not exist, it returns a default Config and no error. Missing
// fields are filled with defaults after parsing.
func Load(projectRoot string) (Config, error) {
	path := ConfigPath(projectRoot)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(filepath.Base(projectRoot)), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg, projectRoot)
	return cfg, nil
}

// Save serialises cfg and writes it to config.json under the given project
// root. The .mdj directory is created if it does not exist.
func Save(projectRoot string, cfg Config) error {
	dir := filepath.Join(projectRoot, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(ConfigPath(projectRoot), data, 0o644)
}

// Migrate checks whether any expected fields are absent from the on-disk
// config.json and, if so, re-writes the file with all default values
// applied. It returns (true, nil) when the file was updated, and (false,
// nil) when it was already complete or when config.json does not exist
// (mdj init creates it from scratch, so there is nothing to migrate).
//
// Migrate is intentionally conservative: it only adds missing fields; it
// never removes or overrides fields that are already present.
func Migrate(projectRoot string) (bool, error) {
	path := ConfigPath(projectRoot)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Malformed JSON: leave the file alone and let Load surface the error.
		return false, nil
	}

	if !isMigrationNeeded(raw) {
		return false, nil
	}

	cfg, err := Load(projectRoot)
	if err != nil {
		return false, err
	}
	if err := Save(projectRoot, cfg); err != nil {
		return false, err
	}
	return true, nil
}

func hasAllKeys(raw map[string]json.RawMessage, objectKey string, keys []string) bool {
	sub, ok := raw[objectKey]
	if !ok {
		return false
	}
	var subMap map[string]json.RawMessage
	if err := json.Unmarshal(sub, &subMap); err != nil {
		return false
	}
	for _, key := range keys {
		if _, ok := subMap[key]; !ok {
			return false
		}
	}
	return true
}

// isMigrationNeeded returns true when any expected key is absent from the
// parsed top-level or nested JSON objects.
func isMigrationNeeded(raw map[string]json.RawMessage) bool {
	for _, key := range requiredTopLevelKeys {
		if _, ok := raw[key]; !ok {
			return true
		}
	}
	if !hasAllKeys(raw, "tags", requiredTagsKeys) {
		return true
	}
	if !hasAllKeys(raw, "search", requiredSearchKeys) {
		return true
	}
	if !hasAllKeys(raw, "tasks", requiredTasksKeys) {
		return true
	}
	return false
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config, projectRoot string) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Project == "" {
		cfg.Project = filepath.Base(projectRoot)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Tags.Ordering == "" {
		cfg.Tags.Ordering = "alphabetic"
	}
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = "or"
	}
	if cfg.Search.Ordering == "" {
		cfg.Search.Ordering = "date"
	}
	if cfg.Search.PresetsFile == "" {
		cfg.Search.PresetsFile = SearchPresetsName
	}
	if cfg.Tasks.Filter == "" {
		cfg.Tasks.Filter = "unfinished"
	}
	if cfg.Tasks.Ordering == "" {
		cfg.Tasks.Ordering = "occurence"
	}
}
