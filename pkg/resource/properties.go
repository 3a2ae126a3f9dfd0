package resource

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var properties = viper.New()
var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// Load reads the default properties and, when overridePath points to an existing file,
// merges it on top. Every string value is then resolved against the environment.
func Load(defaults []byte, overridePath string) error {
	source := viper.New()
	source.SetConfigType("yml")

	if err := source.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return fmt.Errorf("read default properties: %w", err)
	}

	if overridePath != "" {
		if _, err := os.Stat(overridePath); err == nil {
			source.SetConfigFile(overridePath)
			if err := source.MergeInConfig(); err != nil {
				return fmt.Errorf("merge properties %s: %w", overridePath, err)
			}
		}
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", source.AllSettings(), resolved)

	loaded := viper.New()
	for key, value := range resolved {
		loaded.Set(key, value)
	}
	properties = loaded

	return nil
}

// parsePropertiesMap flattens the YAML tree into dotted keys
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable replaces every ${NAME:default} occurrence with the environment value,
// falling back to the default (or an empty string when none is given)
func resolveEnvVariable(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

// GetStringOrDefault returns the property or defaultValue when it is unset or empty.
func GetStringOrDefault(key, defaultValue string) string {
	value := properties.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDurationOrDefault returns the property or defaultValue when it is unset or not positive.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := properties.GetDuration(key)
	if value <= 0 {
		return defaultValue
	}
	return value
}
