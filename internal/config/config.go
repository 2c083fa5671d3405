package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port          int    `yaml:"port"`
	PublicBaseURL string `yaml:"public_base_url"`
	JWTSecret     string `yaml:"jwt_secret"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

// Configured — почта настроена полностью; иначе работаем в dev-режиме
// (письма только в лог).
func (e EmailConfig) Configured() bool {
	return e.SMTPHost != "" && e.SMTPUser != "" && e.SMTPPassword != "" && e.FromEmail != ""
}

type ScoresConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
}

type SeedAdmin struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email  EmailConfig  `yaml:"email"`
	Scores ScoresConfig `yaml:"scores"`
}

// LoadConfig — config/config.yaml плюс переопределения из окружения
// (секреты и адреса в деплое задаются через env, см. README).
func LoadConfig() *Config {
	cfg := &Config{}

	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	applyEnv(cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.PublicBaseURL == "" {
		cfg.Server.PublicBaseURL = "http://localhost:8080"
	}
	if cfg.Server.JWTSecret == "" {
		// тот же dev-дефолт, что у исходного сервера
		cfg.Server.JWTSecret = "dev-secret-change-me"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Database.DSN == "" {
		panic("database url is required (config.yaml database.url or DATABASE_URL)")
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.Server.PublicBaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = p
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Email.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.Email.FromEmail = v
	}
	if v := os.Getenv("SPORTSDB_API_URL"); v != "" {
		cfg.Scores.APIBaseURL = v
	}
}

// SeedAdmins — учётки админов из окружения (как в seed исходного проекта).
func SeedAdmins() []SeedAdmin {
	var out []SeedAdmin
	if email := os.Getenv("ADMIN_OWNER_EMAIL"); email != "" {
		out = append(out, SeedAdmin{
			Email:    email,
			Name:     envOr("ADMIN_OWNER_NAME", "Owner"),
			Password: os.Getenv("ADMIN_OWNER_PASSWORD"),
			Role:     "ADMIN_OWNER",
		})
	}
	if email := os.Getenv("ADMIN_DEV_EMAIL"); email != "" {
		out = append(out, SeedAdmin{
			Email:    email,
			Name:     envOr("ADMIN_DEV_NAME", "Developer"),
			Password: os.Getenv("ADMIN_DEV_PASSWORD"),
			Role:     "ADMIN_DEVELOPER",
		})
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
