package config

import (
	"errors"
	"io/fs"
	"log"
	"net"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// IsProduction reports whether the service runs with production settings
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DSN builds a pgx connection URL. sslmode=require encrypts the connection
// without verifying the server certificate.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads an optional .env file into the process environment and then
// resolves every setting from the environment, falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("PORT", "3001")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "require")

	return &Config{
		Server: ServerConfig{
			Port:      v.GetString("PORT"),
			Env:       v.GetString("SERVER_ENV"),
			StaticDir: v.GetString("STATIC_DIR"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}
}
