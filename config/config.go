package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/naoki6532b/cat-health-log/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Food{},
		&models.Meal{},
		&models.Weight{},
		&models.Elimination{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// ReportLocation is the fixed offset used to bucket timestamps into
// calendar days for daily rollups. Deliberately not the host zone:
// the deployment reports in JST regardless of where the server runs.
func ReportLocation() *time.Location {
	hours := 9
	if v := os.Getenv("REPORT_TZ_OFFSET_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			hours = n
		}
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// Pin returns the shared secret gating the API. Empty disables the gate.
func Pin() string { return os.Getenv("CATLOG_PIN") }
