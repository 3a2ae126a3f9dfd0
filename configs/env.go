package configs

import (
	_ "embed"

	"github.com/spf13/viper"

	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/resource"
)

//go:embed application.yml
var applicationProperties []byte

//go:embed messages.yml
var messageCatalogue []byte

type EnvConfig struct {
	ApplicationName    string
	LogLevel           string
	PropertiesFilePath string
}

var Env *EnvConfig

func init() {
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName:    getStringOrDefault("APPLICATION_NAME", "todo-api"),
		LogLevel:           getStringOrDefault("LOG_LEVEL", "info"),
		PropertiesFilePath: getStringOrDefault("PROPERTIES_FILE_PATH", "configs/application.yml"),
	}

	log.SetLevel(Env.LogLevel)

	if err := msg.Load(messageCatalogue); err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
	if err := resource.Load(applicationProperties, Env.PropertiesFilePath); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
