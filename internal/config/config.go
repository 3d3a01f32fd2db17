package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// MongoConfig contains the document store connection settings.
type MongoConfig struct {
	URI      string `mapstructure:"uri"      validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
}

// RedisConfig contains the cache store connection settings.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// ReminderConfig contains the reminder sweep settings.
type ReminderConfig struct {
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes" validate:"required,gt=0"`
}

// SeedConfig contains the credentials used by the seed command. The
// server ignores these; the seed command refuses to run unless both
// the admin and manager pairs are fully set.
type SeedConfig struct {
	AdminEmail      string `mapstructure:"admin_email"`
	AdminPassword   string `mapstructure:"admin_password"`
	ManagerEmail    string `mapstructure:"manager_email"`
	ManagerPassword string `mapstructure:"manager_password"`
}
