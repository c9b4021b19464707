// Purpose: Assemble the flat key/value mapping a State is loaded from.
// Exports: DefaultConfigPath, LoadConfigFile, EnvMapping, ParseOverrides, BuildMapping.
// Role: First step of every invocation, ahead of LoadState.
// Invariants: Later sources override earlier ones key by key.
// Notes: Sources, lowest to highest precedence:
//   - config file (YAML, or JSON with comments), optional
//   - environment variables named after ConfigKeys (i3blocks exports block properties
//     and the previous output this way)
//   - repeated --set key=value flags
package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	appName        = "i3timer"
	configFileName = "config.yaml"
)

// DefaultConfigPath is the per-user config file consulted when --config is not given.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// LoadConfigFile reads path into a mapping. A missing file is only an error when the
// path was given explicitly.
func LoadConfigFile(path string, explicit bool) (map[string]string, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fileData map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(rawData), &fileData); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	mapping := make(map[string]string, len(fileData))
	for key, value := range fileData {
		if !slices.Contains(ConfigKeys, key) {
			return nil, newError(ErrBadPropertyPattern, "unknown config key: %s", key)
		}
		if value == nil {
			continue
		}
		text, err := stringify(value)
		if err != nil {
			return nil, newError(ErrBadValue, "config key %s: %v", key, err)
		}
		mapping[key] = text
	}
	return mapping, nil
}

func stringify(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return formatFloat(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

// EnvMapping harvests ConfigKeys from the environment via lookup.
func EnvMapping(lookup func(string) (string, bool)) map[string]string {
	mapping := make(map[string]string)
	for _, key := range ConfigKeys {
		if value, ok := lookup(key); ok {
			mapping[key] = value
		}
	}
	return mapping
}

// ParseOverrides turns key=value pairs into a mapping.
func ParseOverrides(pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("usage: --set key=value (got %q)", pair)
		}
		key = strings.TrimSpace(key)
		if !slices.Contains(ConfigKeys, key) {
			return nil, fmt.Errorf("usage: unknown key %q", key)
		}
		mapping[key] = value
	}
	return mapping, nil
}

// BuildMapping merges config file, environment, and overrides.
func BuildMapping(opts GlobalOptions, lookup func(string) (string, bool)) (map[string]string, error) {
	overrides, err := ParseOverrides(opts.Overrides)
	if err != nil {
		return nil, err
	}

	mapping := map[string]string{}
	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		// No resolvable home means no default file, not a failure.
		if path, err = DefaultConfigPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if mapping, err = LoadConfigFile(path, explicit); err != nil {
			return nil, err
		}
	}

	for _, layer := range []map[string]string{EnvMapping(lookup), overrides} {
		for key, value := range layer {
			mapping[key] = value
		}
	}
	return mapping, nil
}
