package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverBolt     = "bolt"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string
	Debug       bool
	StoreDriver string
	BoltPath    string
	MongoURI    string
	MongoDBName string
	Postgres    PostgresConfig
	JWTSecret   string
	SessionTTL  time.Duration
	SeedOnStart bool
	CORSOrigins []string
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		p.Host, p.User, p.Password, p.Name, p.Port)
}

// New returns a viper instance with the portal defaults bound to the
// environment. A .env file in the working directory is loaded first when
// present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("port", "8080")
	v.SetDefault("debug", false)
	v.SetDefault("store_driver", DriverBolt)
	v.SetDefault("bolt_path", "data/eduportal.db")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db_name", "eduportal")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "eduportal")
	v.SetDefault("db_port", "5432")
	v.SetDefault("jwt_secret", "default-secret-key-change-in-production")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("seed_on_start", true)
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("port"),
		Debug:       v.GetBool("debug"),
		StoreDriver: strings.ToLower(v.GetString("store_driver")),
		BoltPath:    v.GetString("bolt_path"),
		MongoURI:    v.GetString("mongo_uri"),
		MongoDBName: v.GetString("mongo_db_name"),
		Postgres: PostgresConfig{
			Host:     v.GetString("db_host"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			Port:     v.GetString("db_port"),
		},
		JWTSecret:   v.GetString("jwt_secret"),
		SessionTTL:  v.GetDuration("session_ttl"),
		SeedOnStart: v.GetBool("seed_on_start"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
	}

	switch cfg.StoreDriver {
	case DriverBolt, DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want bolt, mongo or postgres)", cfg.StoreDriver)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
