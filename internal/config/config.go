// Package config provides configuration related utilities.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Default values for config.
const (
	defaultHost            = "127.0.0.1"
	defaultPort            = "5000"
	defaultFileStoragePath = "config"
)

// DefaultAddress is the default address to bind the server to.
// The service is a single-user local tool, so it binds loopback.
var DefaultAddress = fmt.Sprintf("%s:%s", defaultHost, defaultPort)

// Config represents an application configuration.
type (
	Config struct {
		// The data source name (DSN) for connecting to the database.
		// When empty, mappings are persisted to the file storage.
		DSN string `yaml:"dsn" env:"DATABASE_DSN"`
		// Subconfigs.
		Server Server `yaml:"http_server"`
		// Path to the file holding the mapping table,
		// one "shortcut=url" per line.
		FileStoragePath string `yaml:"file_storage_path" env:"FILE_STORAGE_PATH"`
	}
	// Config for server.
	Server struct {
		// Address to run the server.
		RunAddress *NetAddress `yaml:"server_address" env:"SERVER_ADDRESS"`
		// Read header timeout.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
)

// Interface implementation guards.
var (
	_ flag.Value      = (*NetAddress)(nil)
	_ cleanenv.Setter = (*NetAddress)(nil)
)

// NetAddress represents a network address with a host and a port.
type NetAddress string

// NewNetAddress returns a pointer to a new NetAddress with default Host and Port.
func NewNetAddress() *NetAddress {
	a := NetAddress(DefaultAddress)
	return &a
}

// String returns a string representation of the NetAddress in the form "host:port".
func (a *NetAddress) String() string {
	return string(*a)
}

// Set sets the host and port of the NetAddress from a string
// in the form "host:port".
func (a *NetAddress) Set(s string) error {
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")

	hp := strings.Split(s, ":")

	if len(hp) != 2 {
		return errors.New("need address in a form host:port")
	}

	if _, err := strconv.Atoi(hp[1]); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	if hp[0] != "" {
		*a = NetAddress(fmt.Sprintf("%s:%s", hp[0], hp[1]))
		return nil
	}

	*a = NetAddress(fmt.Sprintf("%s:%s", defaultHost, hp[1]))
	return nil
}

// SetValue implements cleanenv value setter.
func (a *NetAddress) SetValue(s string) error {
	return a.Set(s)
}

// Order of loading configuration:
// 1. Config file (YAML, JSON supported)
// 2. Flags
// 3. Environment variables

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
func MustLoad() *Config {
	var cfg Config
	// Setup default values.
	cfg.Server.RunAddress = NewNetAddress()
	cfg.FileStoragePath = defaultFileStoragePath

	// Configuration file path.
	configPath, set := os.LookupEnv("CONFIG")

	if set {
		// Check if file exists.
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file does not exist: %v", err)
		}

		// Load from config file.
		file, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %v", err)
		}

		// Support different file extensions.
		ext := filepath.Ext(configPath)
		switch ext {
		case ".yaml", ".yml":
			if err = cleanenv.ParseYAML(file, &cfg); err != nil {
				log.Fatalf("failed to parse config file: %v", err)
			}
		case ".json":
			if err = cleanenv.ParseJSON(file, &cfg); err != nil {
				log.Fatalf("failed to parse config file: %v", err)
			}
		default:
			log.Fatalf("unsupported configuration file extension: %q", ext)
		}
	}

	// Read given flags. If not provided use file values.
	flag.Var(cfg.Server.RunAddress, "a", "server start address in form host:port")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "file storage path")
	flag.StringVar(&cfg.DSN, "d", cfg.DSN, "server data source name")
	flag.Parse()

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}

// NewForTest returns application configuration for testing.
func NewForTest() *Config {
	return &Config{
		DSN: "",
		Server: Server{
			RunAddress:      NewNetAddress(),
			Timeout:         5 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		FileStoragePath: defaultFileStoragePath,
	}
}
