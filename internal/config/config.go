package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN              string
	SecretKey          string
	Environment        string
	ListenAddr         string
	MigrationsDir      string
	TempPasswordLength int

	// Опциональный Telegram-канал для дублирования событий
	TelegramToken  string
	TelegramChatID string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		Environment:    os.Getenv("ENV"),
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		MigrationsDir:  os.Getenv("MIGRATIONS_DIR"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8002"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	cfg.TempPasswordLength = 12
	if v := os.Getenv("TEMP_PASSWORD_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 8 {
			return nil, fmt.Errorf("TEMP_PASSWORD_LENGTH must be an integer >= 8, got %q", v)
		}
		cfg.TempPasswordLength = n
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required but not set")
	}

	return cfg, nil
}

// TelegramEnabled — заданы ли оба параметра Telegram-канала
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}
