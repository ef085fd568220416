package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
	} `json:"server"`
	Postgres struct {
		// DSN empty means the remote tier is unconfigured.
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Storage struct {
		// File tier paths; empty means the file tier is unconfigured.
		UsersFile  string `json:"users_file"`
		EventsFile string `json:"events_file"`
	} `json:"storage"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Attendance struct {
		// Timezone names the reference zone for the calendar-day rule,
		// e.g. "Asia/Qatar". Empty means the server's local zone.
		Timezone string `json:"timezone"`
	} `json:"attendance"`
}

// Location resolves the attendance reference timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Attendance.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Attendance.Timezone)
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads the config file from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if c.Server.Port == 0 {
			c.Server.Port = 8080
		}
		if _, err := c.Location(); err != nil {
			cfgErr = fmt.Errorf("invalid attendance timezone: %w", err)
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
