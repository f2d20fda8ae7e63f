// SPDX-License-Identifier: EPL-2.0

// Package config loads soundprep settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ik5/soundprep/logger"
	"github.com/joho/godotenv"
)

const envPrefix = "SOUNDPREP_"

var ErrInvalidConfig = errors.New("invalid configuration")

// Storage describes the S3-compatible bucket finished datasets are
// published to.
type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
	UseSSL    bool
}

type Config struct {
	DatasetDir   string
	AudioDir     string // fold<N> directories live here
	MetadataPath string
	OutputDir    string
	MixedDir     string

	TargetRate  int
	ClipSeconds float64
	TestFold    int

	MixCount int
	MixArity int
	// Seed drives every random draw; 0 derives one from the clock.
	Seed uint64

	Workers int

	LogLevel  string
	LogFormat string
	LogFile   string

	Storage Storage
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(envPrefix + key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set win over the file.
func Load() *Config {
	// a missing .env is fine
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds a Config from the current environment and defaults only.
func FromEnv() *Config {
	datasetDir := getEnv("DATASET_DIR", "./urban8k_ds")

	return &Config{
		DatasetDir:   datasetDir,
		AudioDir:     getEnv("AUDIO_DIR", filepath.Join(datasetDir, "audio")),
		MetadataPath: getEnv("METADATA", filepath.Join(datasetDir, "UrbanSound8K.csv")),
		OutputDir:    getEnv("OUTPUT_DIR", "EdgeImpulse_Dataset"),
		MixedDir:     getEnv("MIXED_DIR", "Mixed_Audio_Test"),

		TargetRate:  getEnvInt("TARGET_RATE", 16000),
		ClipSeconds: getEnvFloat("CLIP_SECONDS", 4.0),
		TestFold:    getEnvInt("TEST_FOLD", 10),

		MixCount: getEnvInt("MIX_COUNT", 100),
		MixArity: getEnvInt("MIX_ARITY", 2),
		Seed:     getEnvUint64("SEED", 0),

		Workers: getEnvInt("WORKERS", 1),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", logger.FormatConsole),
		LogFile:   getEnv("LOG_FILE", ""),

		Storage: Storage{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "soundprep"),
			Region:    getEnv("MINIO_REGION", ""),
			Prefix:    getEnv("MINIO_PREFIX", "datasets"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// SetDatasetDir moves the dataset root. The audio directory and metadata
// path follow it unless the environment sets them.
func (c *Config) SetDatasetDir(dir string) {
	c.DatasetDir = dir
	if os.Getenv(envPrefix+"AUDIO_DIR") == "" {
		c.AudioDir = filepath.Join(dir, "audio")
	}
	if os.Getenv(envPrefix+"METADATA") == "" {
		c.MetadataPath = filepath.Join(dir, "UrbanSound8K.csv")
	}
}

// Logger returns the logging section of c.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		File:       c.LogFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.AudioDir != "", "audio directory is empty")
	check(c.MetadataPath != "", "metadata path is empty")
	check(c.OutputDir != "", "output directory is empty")
	check(c.MixedDir != "", "mixed directory is empty")
	check(c.TargetRate > 0, "target rate %d must be positive", c.TargetRate)
	check(c.ClipSeconds > 0, "clip length %v must be positive", c.ClipSeconds)
	check(c.MixCount >= 0, "mixture count %d must not be negative", c.MixCount)
	check(c.MixArity >= 1, "mixture arity %d must be at least 1", c.MixArity)
	check(c.Workers >= 1, "workers %d must be at least 1", c.Workers)

	return errors.Join(errs...)
}
