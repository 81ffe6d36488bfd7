package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "SecRetKey"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	BlobLocal = "local"
	BlobS3    = "s3"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set in prod")

type Config struct {
	Env       string
	DB        db
	Server    server
	Logger    logger
	Auth      auth
	Upload    upload
	S3        s3
	RateLimit rateLimit
	Seed      seed
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress        string   `env:"RUN_ADDRESS"`
	CORSOrigins       []string `env:"CORS_ORIGINS"`
	TrustProxy        bool     `env:"TRUST_PROXY"`
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type auth struct {
	Secret     string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST"`

	// DefaultSecret: JWT_SECRET не задан и используется SecretKey.
	DefaultSecret bool
}

type upload struct {
	Backend  string `env:"BLOB_BACKEND" envDefault:"local"`
	Dir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES"`
	URLPath  string
}

type s3 struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
}

type rateLimit struct {
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	Login         int    `env:"RATE_LIMIT_LOGIN"`
	Signup        int    `env:"RATE_LIMIT_SIGNUP"`
	Window        time.Duration
}

type seed struct {
	Alerts bool `env:"SEED_ALERTS" envDefault:"true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":5000")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("log_level", "info")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("blob_backend", BlobLocal)
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("upload_max_bytes", 5<<20)
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_bucket", "uploads")
	v.SetDefault("rate_limit_login", 12)
	v.SetDefault("rate_limit_signup", 5)
	v.SetDefault("rate_limit_window", time.Minute)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("trust_proxy", false)
	v.SetDefault("seed_alerts", true)
}

// Load читает .env, переменные окружения и (если задан) конфигурационный файл.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Env: v.GetString("app_env"),
		DB: db{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:        v.GetString("run_address"),
			CORSOrigins:       splitList(v.GetString("cors_origins")),
			TrustProxy:        v.GetBool("trust_proxy"),
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
		Auth: auth{
			Secret:     v.GetString("jwt_secret"),
			TokenTTL:   v.GetDuration("token_ttl"),
			BcryptCost: v.GetInt("bcrypt_cost"),
		},
		Upload: upload{
			Backend:  strings.ToLower(v.GetString("blob_backend")),
			Dir:      v.GetString("upload_dir"),
			MaxBytes: v.GetInt64("upload_max_bytes"),
			URLPath:  "/uploads",
		},
		S3: s3{
			Endpoint:  v.GetString("s3_endpoint"),
			Region:    v.GetString("s3_region"),
			Bucket:    v.GetString("s3_bucket"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
		},
		RateLimit: rateLimit{
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
			Login:         v.GetInt("rate_limit_login"),
			Signup:        v.GetInt("rate_limit_signup"),
			Window:        v.GetDuration("rate_limit_window"),
		},
		Seed: seed{Alerts: v.GetBool("seed_alerts")},
	}

	if cfg.Auth.Secret == "" {
		if cfg.Env == EnvProd {
			return nil, ErrMissingSecret
		}
		cfg.Auth.Secret = SecretKey
		cfg.Auth.DefaultSecret = true
	}

	if cfg.Upload.Backend != BlobLocal && cfg.Upload.Backend != BlobS3 {
		return nil, fmt.Errorf("unknown BLOB_BACKEND %q", cfg.Upload.Backend)
	}

	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
