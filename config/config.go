// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	checkBucket     = pflag.Bool("check-bucket", true, "Verifies that the S3 bucket exists on startup")
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers  = []string{"sqlite", "postgres"}
	validCacheTypes = []string{"memory", "redis"}
)

// CheckBucket reports whether the startup bucket existence check is enabled.
func CheckBucket() bool {
	return *checkBucket
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.bucket", "aws_bucket")

	v.BindEnv("cdn.thumbnail_host", "cdn_thumbnail_host")
	v.BindEnv("cdn.original_host", "cdn_original_host")
	v.BindEnv("cdn.cut_host", "cdn_cut_host")

	v.BindEnv("ai.endpoint", "ai_endpoint")
	v.BindEnv("ai.timeout", "ai_timeout")

	v.BindEnv("cache.store", "cache_store")
	v.BindEnv("cache.redis_addr", "cache_redis_addr")

	v.BindEnv("upload.presign_ttl", "upload_presign_ttl")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5001)
	v.SetDefault("host.domain", "localhost")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("cache.store", "memory")

	// Seconds until an issued upload URL stops working
	v.SetDefault("upload.presign_ttl", 1000)

	// Seconds the AI proxy waits for the agent before giving up
	v.SetDefault("ai.timeout", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database DSN can't be empty")
	}

	if v.GetString("aws.region") == "" {
		return errors.New("AWS region can't be empty")
	}
	if v.GetString("aws.access_key_id") == "" {
		return errors.New("AWS access key ID can't be empty")
	}
	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("AWS secret access key can't be empty")
	}
	if v.GetString("aws.bucket") == "" {
		return errors.New("bucket can't be empty")
	}

	if v.GetString("cdn.thumbnail_host") == "" {
		return errors.New("thumbnail CDN host can't be empty")
	}
	if v.GetString("cdn.original_host") == "" {
		return errors.New("original video CDN host can't be empty")
	}
	if v.GetString("cdn.cut_host") == "" {
		return errors.New("cut video CDN host can't be empty")
	}

	if v.GetString("ai.endpoint") == "" {
		fmt.Println("[WARNING]: No AI agent endpoint configured. Prompt requests will be rejected until ai.endpoint is set")
	}

	if v.GetInt("ai.timeout") <= 0 {
		return errors.New("AI timeout must be bigger than 0")
	}

	if !slices.Contains(validCacheTypes, v.GetString("cache.store")) {
		return errors.New("invalid cache store provided")
	}

	if v.GetString("cache.store") == "redis" && v.GetString("cache.redis_addr") == "" {
		return errors.New("redis address can't be empty when the redis cache store is selected")
	}

	if v.GetInt("upload.presign_ttl") <= 0 {
		return errors.New("presign TTL must be bigger than 0")
	}

	return nil
}
