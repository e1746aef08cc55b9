package core

import (
	"errors"
	"fmt"
	"os"
)

const (
	defaultConfigEnvironment = "development"
	defaultConfigPort        = 8000

	defaultOtelDisable          = false
	defaultOTLPExporterEndpoint = "localhost:4317"
	defaultOTLPInsecure         = false

	defaultRedisAddr     = "localhost:6379"
	defaultRedisPassword = ""
	defaultRedisDB       = 0

	defaultRazorpayBaseURL = "https://api.razorpay.com/v1"

	defaultPaymentLinkURL = "https://rzp.io/l/learnspace-checkout"
)

func DefaultConfig() Config {
	return Config{
		Environment: defaultConfigEnvironment,
		Port:        defaultConfigPort,
		Otel: OtelConfig{
			Disable: defaultOtelDisable,
			OtlpExporter: OtlpConfig{
				Endpoint: defaultOTLPExporterEndpoint,
				Insecure: defaultOTLPInsecure,
			},
		},
		Redis: RedisConfig{
			Addr:     defaultRedisAddr,
			Password: defaultRedisPassword,
			DB:       defaultRedisDB,
		},
		Razorpay: RazorpayConfig{
			BaseURL: defaultRazorpayBaseURL,
		},
		Payment: PaymentConfig{
			LinkURL: defaultPaymentLinkURL,
		},
	}
}

func NewConfig(options ...func(*Config)) Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return config
}

func NewConfigFromEnv(options ...func(*Config)) (Config, error) {
	config := DefaultConfig()
	err := errors.Join(
		setFromEnv(&config.Environment, "ENVIRONMENT"),
		setFromEnv(&config.Port, "PORT"),
		setFromEnv(&config.Otel.Disable, "OTEL_DISABLE"),
		setFromEnv(&config.Otel.OtlpExporter.Endpoint, "OTEL_OTLP_EXPORTER_ENDPOINT"),
		setFromEnv(&config.Otel.OtlpExporter.Insecure, "OTEL_OTLP_EXPORTER_INSECURE"),
		setFromEnv(&config.Redis.Addr, "REDIS_ADDR"),
		setFromEnv(&config.Redis.Password, "REDIS_PASSWORD"),
		setFromEnv(&config.Redis.DB, "REDIS_DB"),
		setFromEnv(&config.Cratio.APIURL, "CRATIO_API_URL"),
		setFromEnv(&config.Cratio.APIKey, "CRATIO_API_KEY"),
		setFromEnv(&config.Razorpay.KeyID, "RAZORPAY_KEY_ID"),
		setFromEnv(&config.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET"),
		setFromEnv(&config.Razorpay.BaseURL, "RAZORPAY_BASE_URL"),
		setFromEnv(&config.Payment.LinkURL, "PAYMENT_LINK_URL"),
		setFromEnv(&config.Admin.JWKSURL, "ADMIN_JWKS_URL"),
		setFromEnv(&config.Admin.Issuer, "ADMIN_ISSUER"),
		setFromEnv(&config.Admin.Audience, "ADMIN_AUDIENCE"),
		setFromEnv(&config.Admin.Disable, "ADMIN_AUTH_DISABLE"),
	)

	// The CRM endpoint used to be exposed to the browser bundle under
	// the NEXT_PUBLIC_ prefix. Still honored so old deploy configs keep
	// working.
	if config.Cratio.APIURL == "" {
		if legacy := os.Getenv("NEXT_PUBLIC_CRATIO_API_URL"); legacy != "" {
			config.Cratio.APIURL = legacy
		}
	}

	for _, opt := range options {
		opt(&config)
	}

	return config, err
}

func LoadEnv(environment ...string) error {
	filenames := []string{
		".env.local",
		".env",
	}

	env := getEnv("ENVIRONMENT", DefaultConfig().Environment)
	if len(environment) > 0 {
		env = environment[0]
	}

	if env != "" {
		file := ".env." + env + ".local"
		filenames = append([]string{file}, filenames...)
	}

	var errs error

	for _, filename := range filenames {
		err := loadEnvFile(filename)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", filename, err),
			)
		}
	}

	return errs
}
