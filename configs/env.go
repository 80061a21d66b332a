package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port            string        `yaml:"port" validate:"required"`
	DatabaseURL     string        `yaml:"database_url"`
	DatabaseName    string        `yaml:"database_name" validate:"required"`
	StoreDriver     string        `yaml:"store_driver" validate:"oneof=mongo memory"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db" validate:"gte=0"`
	ProductCacheTTL time.Duration `yaml:"product_cache_ttl" validate:"gte=0"`
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenTTL        time.Duration `yaml:"token_ttl" validate:"gte=0"`
	RequireAuth     bool          `yaml:"require_auth"`
	OTPCode         string        `yaml:"otp_code" validate:"required"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"gt=0"`
	AppEnv          string        `yaml:"app_env"`
}

func Default() Config {
	return Config{
		Port:            "8000",
		DatabaseName:    "vegholic",
		StoreDriver:     DriverMongo,
		ProductCacheTTL: 5 * time.Minute,
		TokenTTL:        7 * 24 * time.Hour,
		OTPCode:         "1234",
		RequestTimeout:  10 * time.Second,
		AppEnv:          "production",
	}
}

// Load reads .env if present, then the YAML file named by CONFIG_FILE,
// then environment variables, each layer overriding the one before.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	stringVars := map[string]*string{
		"PORT":           &cfg.Port,
		"DATABASE_URL":   &cfg.DatabaseURL,
		"DATABASE_NAME":  &cfg.DatabaseName,
		"STORE_DRIVER":   &cfg.StoreDriver,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"JWT_SECRET":     &cfg.JWTSecret,
		"OTP_CODE":       &cfg.OTPCode,
		"APP_ENV":        &cfg.AppEnv,
	}
	for key, dst := range stringVars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"PRODUCT_CACHE_TTL": &cfg.ProductCacheTTL,
		"TOKEN_TTL":         &cfg.TokenTTL,
		"REQUEST_TIMEOUT":   &cfg.RequestTimeout,
	}
	for key, dst := range durations {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}
	if v, ok := os.LookupEnv("REQUIRE_AUTH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REQUIRE_AUTH: %w", err)
		}
		cfg.RequireAuth = b
	}
	return nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.StoreDriver == DriverMongo && c.DatabaseURL == "" {
		return errors.New("invalid config: DATABASE_URL is required for the mongo store")
	}
	if c.RequireAuth && c.JWTSecret == "" {
		return errors.New("invalid config: REQUIRE_AUTH needs JWT_SECRET")
	}
	return nil
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}
