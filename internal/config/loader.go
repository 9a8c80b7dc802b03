package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a yaml file and environment
// variables. Environment variables use the ECOWASTE_ prefix with dots
// replaced by underscores, e.g. ECOWASTE_MONGO_URI.
func LoadConfig() (*Config, error) {
	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/ecowaste")
	}

	viper.SetEnvPrefix("ECOWASTE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine, environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "15s")
	viper.SetDefault("server.environment", "development")

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "ecowaste")
	viper.SetDefault("mongo.connect_timeout", "10s")
	viper.SetDefault("mongo.op_timeout", "5s")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.role_ttl", "1m")
	viper.SetDefault("redis.enabled", false)

	viper.SetDefault("kafka.moderation_topic", "ecowaste.moderation.events")
	viper.SetDefault("kafka.enabled", false)

	viper.SetDefault("activity_log.flush_interval", "30s")
	viper.SetDefault("activity_log.flush_threshold", 100)

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.service_name", "ecowaste-backend")
	viper.SetDefault("telemetry.otlp_endpoint", "localhost:4317")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
