package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	OpenAIAPIKey  string
	Model         string
	AllowedOrigin string
	// Optional YAML file overriding the built-in interaction inventory
	InventoryFile string
	// Number of prior messages sent with each remote completion call
	MaxHistory int
	// Gap between consecutive card appends in a burst (milliseconds)
	CardStaggerMS int
	// Upper clamp on scripted response delays (milliseconds, 0 = none)
	MaxDelayMS int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:          getEnvDefault("PORT", "8080"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:         getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		AllowedOrigin: getEnvDefault("ALLOWED_ORIGIN", "*"),
		InventoryFile: os.Getenv("INVENTORY_FILE"),
		MaxHistory:    getEnvIntDefault("MAX_HISTORY", 5),
		CardStaggerMS: getEnvIntDefault("CARD_STAGGER_MS", 200),
		MaxDelayMS:    getEnvIntDefault("MAX_DELAY_MS", 0),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; remote dispatch will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
