package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the admin backend.
type Config struct {
	Port          string
	MongoURL      string
	MongoDB       string
	RedisURL      string
	PostgresDSN   string // empty disables the relational delivery log
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	SNSTopicArn  string // empty disables order event publishing
	AWSEndpoint  string
	S3Bucket     string
	S3Prefix     string
	S3PublicBase string
}

// LoadConfig reads environment variables into Config and validates the
// required ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDB:       os.Getenv("MONGO_DB"),
		RedisURL:      os.Getenv("REDIS_URL"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SNSTopicArn:   os.Getenv("SNS_TOPIC_ARN"),
		AWSEndpoint:   os.Getenv("AWS_ENDPOINT"),
		S3Bucket:      os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:      os.Getenv("AWS_S3_PREFIX"),
		S3PublicBase:  os.Getenv("AWS_S3_PUBLIC_BASE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = "mongodb://mongo:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "bolpurmart"
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = "bolpurmart"
	}
	if cfg.S3Prefix == "" {
		cfg.S3Prefix = "uploads/"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	return cfg, nil
}
