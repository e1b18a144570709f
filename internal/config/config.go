package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	Env           string // "dev" or "prod"
	LogLevel      string
	TemplatesDir  string // vazio = templates embutidos no binário

	OTelExporter string // "none", "stdout" ou "otlp"
	OTelEndpoint string

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "./blogicum.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Env:           getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TemplatesDir:  os.Getenv("TEMPLATES_DIR"),
		OTelExporter:  getEnv("OTEL_EXPORTER", "none"),
		OTelEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS inválido: %w", err)
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST inválido: %w", err)
	}
	cfg.RateLimitBurst = burst

	switch cfg.OTelExporter {
	case "none", "stdout":
	case "otlp":
		if cfg.OTelEndpoint == "" {
			return nil, fmt.Errorf("OTEL_EXPORTER=otlp exige OTEL_EXPORTER_OTLP_ENDPOINT")
		}
	default:
		return nil, fmt.Errorf("OTEL_EXPORTER desconhecido: %q", cfg.OTelExporter)
	}

	// Validação Estrita para Produção
	if cfg.Env == "prod" {
		if cfg.SessionSecret == "" {
			return nil, fmt.Errorf("produção: SESSION_SECRET é obrigatório")
		}
	} else {
		// No dev, se não houver secret, usamos um valor fraco apenas para não quebrar o boot
		if cfg.SessionSecret == "" {
			cfg.SessionSecret = "dev-secret-keep-it-simple-but-not-safe"
		}
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
