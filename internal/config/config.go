package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionSecret    string
	RabbitMQURI      string
	RabbitMQExchange string
}

// Load reads .env (if present) and collects all settings once at startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	return &Config{
		Port:             getEnvOrDefault("PORT", "4000"),
		GinMode:          getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "kysely"),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:    os.Getenv("REDIS_PWD"),
		RedisDB:          redisDB,
		SessionSecret:    getEnvOrDefault("SESSION_SECRET", "kysely-dev-secret"),
		RabbitMQURI:      os.Getenv("RABBITMQ_URI"),
		RabbitMQExchange: os.Getenv("RABBITMQ_EXCHANGE"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
