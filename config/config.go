package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SMTPHost  string
	SMTPPort  string
	MailFrom  string
	MailPass  string
	PublicURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	EscrowAPIURL   string
	EscrowAuthURL  string
	EscrowClientID string
	EscrowSecret   string

	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	IdentityAPIURL string
	IdentityAPIKey string

	WebhookSecret  string
	MaxImageSizeMB int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnv("SMTP_PORT", "587"),
		MailFrom:  getEnv("MAIL_FROM", ""),
		MailPass:  getEnv("MAIL_PASSWORD", ""),
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:3000"),

		DBHost:     getEnv("POSTGRES_HOST", "localhost"),
		DBUser:     getEnv("POSTGRES_USER", "user"),
		DBPassword: getEnv("POSTGRES_PASSWORD", "password"),
		DBName:     getEnv("POSTGRES_DB", "database"),
		DBPort:     getEnv("POSTGRES_PORT", "5432"),

		EscrowAPIURL:   getEnv("ESCROW_API_URL", "https://api.tradesafe.co.za/graphql"),
		EscrowAuthURL:  getEnv("ESCROW_AUTH_URL", "https://auth.tradesafe.co.za/oauth/token"),
		EscrowClientID: getEnv("ESCROW_CLIENT_ID", ""),
		EscrowSecret:   getEnv("ESCROW_SECRET", ""),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "campaign-images"),
		StorageUseSSL:    getEnvBool("STORAGE_USE_SSL", false),

		IdentityAPIURL: getEnv("IDENTITY_API_URL", "https://api.clerk.com/v1"),
		IdentityAPIKey: getEnv("IDENTITY_API_KEY", ""),

		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
		MaxImageSizeMB: getEnvInt("MAX_IMAGE_SIZE_MB", 5),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EscrowClientID == "" || AppConfig.EscrowSecret == "" {
		log.Println("Warning: Escrow provider credentials are not set. Provider calls will fail.")
	}
	if AppConfig.StorageAccessKey == "" || AppConfig.StorageSecretKey == "" {
		log.Println("Warning: Object storage credentials are not set. Image uploads will fail.")
	}
	if AppConfig.WebhookSecret == "" {
		log.Println("Warning: WEBHOOK_SECRET is not set. Payment webhooks are unauthenticated.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a bool or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
