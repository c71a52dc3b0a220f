package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/elarafragrance/elara-backend/internal/api/http"
	"github.com/elarafragrance/elara-backend/internal/bucket"
	"github.com/elarafragrance/elara-backend/internal/mail"
	"github.com/elarafragrance/elara-backend/internal/ordercleanup"
	"github.com/elarafragrance/elara-backend/internal/payment/stripe"
	"github.com/elarafragrance/elara-backend/internal/store"
	"github.com/elarafragrance/elara-backend/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB           store.Config        `mapstructure:"mysql"`
	Logger       log.Config          `mapstructure:"logger"`
	HTTP         httpapi.Config      `mapstructure:"http"`
	Bucket       bucket.Config       `mapstructure:"bucket"`
	Mailer       mail.Config         `mapstructure:"mailer"`
	OrderCleanup ordercleanup.Config `mapstructure:"order_cleanup"`
	Stripe       stripe.Config       `mapstructure:"stripe"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/elara-backend")
		viper.AddConfigPath("/etc/elara-backend")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Construct the DSN from individual env vars when it is not set directly,
	// the way managed-database platforms expose credentials.
	if config.DB.DSN == "" {
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")

		if host != "" && user != "" && password != "" && database != "" {
			if port == "" {
				port = "3306"
			}
			tlsParam := ""
			if config.DB.TLSCAPath != "" {
				tlsParam = "&tls=custom"
			}
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true%s",
				user, password, host, port, database, tlsParam)
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so flat env names
// like MYSQL_DSN work alongside nested TOML keys.
func bindEnvVars() {
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	viper.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.jwt_secret", "HTTP_JWT_SECRET")
	viper.BindEnv("http.session_ttl", "HTTP_SESSION_TTL")
	viper.BindEnv("http.default_commission_pct", "HTTP_DEFAULT_COMMISSION_PCT")

	viper.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	viper.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	viper.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	viper.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	viper.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	viper.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")

	viper.BindEnv("mailer.sendgrid_api_key", "MAILER_SENDGRID_API_KEY")
	viper.BindEnv("mailer.from_email", "MAILER_FROM_EMAIL")
	viper.BindEnv("mailer.from_email_name", "MAILER_FROM_EMAIL_NAME")
	viper.BindEnv("mailer.worker_interval", "MAILER_WORKER_INTERVAL")

	viper.BindEnv("order_cleanup.worker_interval", "ORDER_CLEANUP_WORKER_INTERVAL")
	viper.BindEnv("order_cleanup.pending_threshold", "ORDER_CLEANUP_PENDING_THRESHOLD")

	viper.BindEnv("stripe.secret_key", "STRIPE_SECRET_KEY")
	viper.BindEnv("stripe.pub_key", "STRIPE_PUB_KEY")
	viper.BindEnv("stripe.currency", "STRIPE_CURRENCY")
}
