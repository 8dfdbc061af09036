package config

import "github.com/spf13/viper"

// Config holds everything the application reads from the environment.
type Config struct {
	AppPort     string
	DatabaseDSN string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	UploadDir   string
	RabbitMQURL string
}

// Load reads configuration from environment variables with sensible
// defaults. The default DSN is an on-disk SQLite file so the server runs
// without any external services; set DATABASE_DSN to a postgres DSN in
// production. RABBITMQ_URL left empty disables event publishing.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "supermart.db")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("JWT_ISSUER", "supermart")
	viper.SetDefault("JWT_AUDIENCE", "supermart-client")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		JWTIssuer:   viper.GetString("JWT_ISSUER"),
		JWTAudience: viper.GetString("JWT_AUDIENCE"),
		UploadDir:   viper.GetString("UPLOAD_DIR"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}
