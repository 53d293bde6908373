package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the catalog service.
type Config struct {
	AppPort     string
	DBDriver    string
	DatabaseURL string
	LogLevel    string
	RabbitMQURL string

	UploadAllowedExtensions []string
	UploadMaxBytes          int

	SeedProducts bool
}

// Load reads configuration from an optional .env file and the environment.
func Load() Config {
	// A missing .env file is expected outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return Config{
		AppPort:                 v.GetString("APP_PORT"),
		DBDriver:                strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		UploadAllowedExtensions: splitList(v.GetString("UPLOAD_ALLOWED_EXTENSIONS")),
		UploadMaxBytes:          v.GetInt("UPLOAD_MAX_BYTES"),
		SeedProducts:            v.GetBool("SEED_PRODUCTS"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("UPLOAD_ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("SEED_PRODUCTS", false)
}

// splitList turns "jpg, PNG,,gif" into [jpg png gif].
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
