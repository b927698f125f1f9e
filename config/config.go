package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ichi1107/bento-order-system/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, populated by Load
var JWTSecret []byte

const defaultJWTSecret = "bento_order_dev_secret_2025"

// Config holds all runtime settings, read once at startup.
type Config struct {
	DBDriver   string // "sqlite" or "postgres"
	DBSource   string // file path for sqlite, DSN for postgres
	Port       string
	GinMode    string
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

var App Config

// Load reads configuration from the environment. A .env file is optional;
// real deployments set the environment directly.
func Load() {
	_ = godotenv.Load()

	App = Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBSource:   getEnv("DB_SOURCE", "bento_order.db"),
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		JWTSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
		AccessTTL:  time.Duration(getEnvInt("JWT_ACCESS_TTL_MIN", 30)) * time.Minute,
		RefreshTTL: time.Duration(getEnvInt("JWT_REFRESH_TTL_HOURS", 168)) * time.Hour,
	}
	JWTSecret = []byte(App.JWTSecret)

	if App.JWTSecret == defaultJWTSecret && App.GinMode == "release" {
		logrus.Warn("JWT_SECRET is the built-in development default; set a real secret in production")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logrus.Warnf("Ignoring non-numeric %s=%q", key, v)
	}
	return fallback
}

func InitDB() {
	var dial gorm.Dialector
	switch App.DBDriver {
	case "postgres":
		if App.DBSource == "" {
			logrus.Fatal("DB_SOURCE is required when DB_DRIVER=postgres")
		}
		dial = postgres.Open(App.DBSource)
	default:
		dial = sqlite.Open(App.DBSource)
	}

	var err error
	DB, err = gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("Failed to connect to database with error: %+v", err)
	}

	// user_roles carries an assigned_at timestamp, so it needs its own model
	if err := DB.SetupJoinTable(&models.User{}, "Roles", &models.RoleAssignment{}); err != nil {
		logrus.Fatalf("Failed to set up user_roles join table with error: %+v", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Role{},
		&models.Menu{},
		&models.Order{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		logrus.Fatalf("Failed to migrate database with error: %+v", err)
	}

	logrus.Info("✅ Database connected and migrated successfully")
}
