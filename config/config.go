package config

import (
	"fmt"
	"os"

	"github.com/mfranzen/GigSphere/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Review conflict scopes: one review per reviewer+subject pair, or one
// review per subject regardless of author.
const (
	ReviewScopePair    = "pair"
	ReviewScopeSubject = "subject"
)

// Config holds all configuration for the application
type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	Port         string
	Env          string
	ReviewScope  string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Missing .env is fine when variables come from the real environment.
	_ = godotenv.Load()

	config := &Config{
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Port:         os.Getenv("PORT"),
		Env:          os.Getenv("ENV"),
		ReviewScope:  os.Getenv("REVIEW_CONFLICT_SCOPE"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}

	if config.ReviewScope == "" {
		config.ReviewScope = ReviewScopePair
	}
	if config.ReviewScope != ReviewScopePair && config.ReviewScope != ReviewScopeSubject {
		return nil, fmt.Errorf("invalid REVIEW_CONFLICT_SCOPE: %q", config.ReviewScope)
	}

	return config, nil
}

// ReviewConflictScope returns the configured duplicate-review scope.
func ReviewConflictScope() string {
	scope := os.Getenv("REVIEW_CONFLICT_SCOPE")
	if scope != ReviewScopeSubject {
		return ReviewScopePair
	}
	return scope
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateDB(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateDB runs schema migrations for all models.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
	)
}
