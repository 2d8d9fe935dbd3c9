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
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	UploadDir string

	EmailSender    string
	Password       string // SMTP app password
	SendGridApiKey string // preferred over SMTP when set

	RedisURL string // optional shared store for the login limiter

	// Exam creation policy
	ExamMinContent    int    // minimum content count before an exam may be created
	ExamThresholdMode string // "chapters" or "lessons"

	// Login lockout policy
	MaxLoginAttempts int
	LockoutMinutes   int

	// Third-party connectors
	ClassroomToken string // Google Classroom OAuth token
	JotFormApiKey  string
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
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "campus"),
		DBPort:     getEnv("DB_PORT", "5432"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		EmailSender:    getEnv("EMAIL_SENDER", ""),
		Password:       getEnv("MAIL_PASSWORD", ""),
		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		ExamMinContent:    getEnvInt("EXAM_MIN_CONTENT", 10),
		ExamThresholdMode: getEnv("EXAM_THRESHOLD_MODE", "chapters"),

		MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
		LockoutMinutes:   getEnvInt("LOCKOUT_MINUTES", 15),

		ClassroomToken: getEnv("CLASSROOM_TOKEN", ""),
		JotFormApiKey:  getEnv("JOTFORM_API_KEY", ""),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ExamThresholdMode != "chapters" && AppConfig.ExamThresholdMode != "lessons" {
		log.Printf("Warning: unknown EXAM_THRESHOLD_MODE %q, falling back to chapters", AppConfig.ExamThresholdMode)
		AppConfig.ExamThresholdMode = "chapters"
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
