package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the wild-oasis service.
type ServiceConfig struct {
	Port     string         `mapstructure:"port"`
	AppEnv   string         `mapstructure:"app_env"`
	PageSize int            `mapstructure:"page_size"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// KafkaConfig holds the event-publishing settings. Publishing is
// optional; with Enabled false the service runs without a broker.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
}

// Load reads configuration from the environment with the OASIS prefix,
// falling back to an optional config.yaml in the working directory.
// The page size used by list pagination lives here and is threaded
// explicitly into the repositories at construction time.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("OASIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("page_size", 10)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wild_oasis")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
}
