package msg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var messages = make(map[string]string)

// Load reads a YAML message catalogue and adds its entries, keyed by dotted path.
func Load(data []byte) error {
	source := viper.New()
	source.SetConfigType("yml")

	if err := source.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	parseMessageMap("", source.AllSettings(), messages)
	return nil
}

// parseMessageMap read recursively the yml archive
func parseMessageMap(prefix string, data map[string]interface{}, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]interface{}:
			parseMessageMap(fullKey, v, result)
		}
	}
}

// GetMessage returns the message for key with {0}, {1}... replaced by args
func GetMessage(key string, args ...interface{}) string {
	msg, exists := messages[key]
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		placeholder := "{" + strconv.Itoa(i) + "}"
		msg = strings.ReplaceAll(msg, placeholder, argToString(arg))
	}

	return msg
}

// argToString renders primitives directly and everything else as JSON
func argToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(jsonBytes)
}
