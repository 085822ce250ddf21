package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultPhotoBackupsSubDir = "photo_backups"
)

const (
	defaultBackupQueueSize  = 200
	defaultNumBackupWorkers = 4

	defaultAutoSaveTickSeconds        = 5
	defaultAutoSaveMinIntervalSeconds = 30
	defaultGeolocationTimeoutSeconds  = 5
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for generated assets
	PhotoBackupsPath string // full-calculated path for photo backups

	// backup worker settings
	BackupQueueSize  int
	NumBackupWorkers int

	// capture session timing
	AutoSaveTick        time.Duration
	AutoSaveMinInterval time.Duration
	GeolocationTimeout  time.Duration
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "inspections.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	backupSubDir := getEnvOrDefault("PHOTO_BACKUPS_SUBDIR", DefaultPhotoBackupsSubDir)
	absBackupsPath := filepath.Join(absMediaStorage, backupSubDir)

	queueSize := getEnvIntOrDefault("BACKUP_QUEUE_SIZE", defaultBackupQueueSize)
	numWorkers := getEnvIntOrDefault("NUM_BACKUP_WORKERS", defaultNumBackupWorkers)

	tick := getEnvIntOrDefault("AUTOSAVE_TICK_SECONDS", defaultAutoSaveTickSeconds)
	minInterval := getEnvIntOrDefault("AUTOSAVE_MIN_INTERVAL_SECONDS", defaultAutoSaveMinIntervalSeconds)
	geoTimeout := getEnvIntOrDefault("GEOLOCATION_TIMEOUT_SECONDS", defaultGeolocationTimeoutSeconds)

	cfg := Config{
		DatabasePath:        dbPath,
		MediaStoragePath:    absMediaStorage,
		PhotoBackupsPath:    absBackupsPath,
		BackupQueueSize:     queueSize,
		NumBackupWorkers:    numWorkers,
		AutoSaveTick:        time.Duration(tick) * time.Second,
		AutoSaveMinInterval: time.Duration(minInterval) * time.Second,
		GeolocationTimeout:  time.Duration(geoTimeout) * time.Second,
	}

	return cfg, nil
}
