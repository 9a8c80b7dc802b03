package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Auth        AuthConfig        `mapstructure:"auth"`
	ActivityLog ActivityLogConfig `mapstructure:"activity_log"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	// OpTimeout bounds every individual store call. The underlying driver
	// has no default deadline, so an unset value would block on outages.
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	RoleTTL  time.Duration `mapstructure:"role_ttl"`
	Enabled  bool          `mapstructure:"enabled"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	ModerationTopic string   `mapstructure:"moderation_topic"`
	Enabled         bool     `mapstructure:"enabled"`
}

type AuthConfig struct {
	// JWTSecret is the shared secret the external identity provider signs
	// session tokens with.
	JWTSecret string `mapstructure:"jwt_secret"`
	// WebhookSecret signs identity sync webhook payloads.
	WebhookSecret string `mapstructure:"webhook_secret"`
	// BootstrapAdmins are external identities allowed to claim the first
	// admin role while the directory contains no admin. The list grants
	// nothing once an admin exists.
	BootstrapAdmins []string `mapstructure:"bootstrap_admins"`
}

type ActivityLogConfig struct {
	FlushInterval  time.Duration `mapstructure:"flush_interval"`
	FlushThreshold int           `mapstructure:"flush_threshold"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	// OTLPEndpoint is the gRPC collector address, e.g. "localhost:4317".
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
