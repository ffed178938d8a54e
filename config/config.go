package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// Staging-DB: die von dlt gelandeten NVA-Daten.
	StagingDBHost     string `envconfig:"STAGING_DB_HOST" required:"true"`
	StagingDBPort     int    `envconfig:"STAGING_DB_PORT" default:"5432"`
	StagingDBUser     string `envconfig:"STAGING_DB_USER" required:"true"`
	StagingDBPassword string `envconfig:"STAGING_DB_PASSWORD" required:"true"`
	StagingDBName     string `envconfig:"STAGING_DB_NAME" default:"nva_sync"`

	// Pbase-DB: das Warehouse mit der Cristin-Tabelle.
	PbaseDBHost     string `envconfig:"PBASE_DB_HOST" required:"true"`
	PbaseDBPort     int    `envconfig:"PBASE_DB_PORT" default:"5432"`
	PbaseDBUser     string `envconfig:"PBASE_DB_USER" required:"true"`
	PbaseDBPassword string `envconfig:"PBASE_DB_PASSWORD" required:"true"`
	PbaseDBName     string `envconfig:"PBASE_DB_NAME" default:"pbase"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Öffentliche NVA-Registrierungs-URL; wird der id neuer Zeilen
	// vorangestellt.
	RegistrationBaseURL string `envconfig:"REGISTRATION_BASE_URL" default:"https://nva.sikt.no/registration/"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 3 * * *"`

	// Report-Archiv (optional; leer lassen, um das Archiv zu deaktivieren).
	ReportsS3Key    string `envconfig:"REPORTS_S3_KEY"`
	ReportsS3Secret string `envconfig:"REPORTS_S3_SECRET"`
	ReportsS3URL    string `envconfig:"REPORTS_S3_URL"`
	ReportsS3Region string `envconfig:"REPORTS_S3_REGION" default:"us-east-1"`
	ReportsS3Bucket string `envconfig:"REPORTS_S3_BUCKET"`
}

// StagingDSN gibt den Data Source Name für die Staging-DB zurück.
func (c *Config) StagingDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.StagingDBHost, c.StagingDBUser, c.StagingDBPassword, c.StagingDBName, c.StagingDBPort)
}

// PbaseDSN gibt den Data Source Name für die Pbase-DB zurück.
func (c *Config) PbaseDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PbaseDBHost, c.PbaseDBUser, c.PbaseDBPassword, c.PbaseDBName, c.PbaseDBPort)
}

// ArchiveEnabled meldet, ob das S3-Report-Archiv konfiguriert ist.
func (c *Config) ArchiveEnabled() bool {
	return c.ReportsS3URL != "" && c.ReportsS3Bucket != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
