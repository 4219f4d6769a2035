package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type (
	APP struct {
		Name           string
		Host           string
		Port           string
		Env            string
		RequestTimeout time.Duration
		CORSOrigins    []string
	}
	DB struct {
		User          string
		Password      string
		Name          string
		Host          string
		Port          string
		MaxConns      int32
		MinConns      int32
		RunMigrations bool
	}
	Upload struct {
		Dir          string
		PublicPrefix string
		MaxSizeBytes int64
	}
	Log struct {
		Level string
	}

	Config struct {
		App    APP
		DB     DB
		Upload Upload
		Log    Log
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvAsBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvAsList(key, def string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, def), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:           getEnv("SERVICE_NAME", "userdirectory"),
		Host:           getEnv("SERVICE_HOST", ""),
		Port:           getEnv("SERVICE_PORT", "5000"),
		Env:            getEnv("SERVICE_ENV", EnvDevelopment),
		RequestTimeout: time.Duration(getEnvAsInt("SERVICE_REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", "http://localhost:5173"),
	}
	db := DB{
		User:          getEnv("POSTGRES_USER", ""),
		Password:      getEnv("POSTGRES_PASSWORD", ""),
		Name:          getEnv("POSTGRES_DB", ""),
		Host:          getEnv("POSTGRES_HOST", ""),
		Port:          getEnv("POSTGRES_PORT", "5432"),
		MaxConns:      int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
		MinConns:      int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
		RunMigrations: getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
	}
	upload := Upload{
		Dir:          getEnv("UPLOAD_DIR", "uploads"),
		PublicPrefix: getEnv("UPLOAD_PUBLIC_PREFIX", "/uploads"),
		MaxSizeBytes: int64(getEnvAsInt("UPLOAD_MAX_SIZE_BYTES", 10<<20)),
	}
	lg := Log{
		Level: getEnv("LOG_LEVEL", "info"),
	}

	return Config{
		App:    app,
		DB:     db,
		Upload: upload,
		Log:    lg,
	}
}

// IsProduction reports whether error stacks must be hidden and access logs disabled.
func (a APP) IsProduction() bool {
	switch strings.ToLower(a.Env) {
	case EnvProduction, "prod", "release":
		return true
	}
	return false
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}
