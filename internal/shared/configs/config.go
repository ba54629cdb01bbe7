package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	RecordStore RecordStoreConfig `mapstructure:"record_store" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Report      ReportConfig      `mapstructure:"report" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// RecordStoreConfig selects where ingested query records are kept.
type RecordStoreConfig struct {
	Backend    string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
}

// CacheConfig configures the record cache in front of the record source.
type CacheConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=memory redis"`
	TTLSeconds    int    `mapstructure:"ttl_seconds" validate:"required,min=1"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"min=0"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	DefaultWindow string `mapstructure:"default_window" validate:"required,oneof=day week month"`
}
