package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/onepass/internal/timex"
)

// Config holds runtime settings for the onepass CLI.
//
// Fields:
//   - ServerAddress: host:port of the server gRPC endpoint.
//   - SessionFile: where the session token is kept between commands.
//   - Timeout: deadline applied to every request.
type Config struct {
	ServerAddress string
	SessionFile   string
	Timeout       time.Duration
}

// userHomeDir is a seam for os.UserHomeDir.
var userHomeDir = os.UserHomeDir

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddress = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second

	if home, err := userHomeDir(); err == nil && home != "" {
		c.SessionFile = filepath.Join(home, ".onepass", "session")
	} else {
		c.SessionFile = ".onepass-session"
	}
}

// FileConfig is a DTO used exclusively for file unmarshalling.
type FileConfig struct {
	ServerAddress string         `json:"server_address" toml:"server_address"`
	SessionFile   string         `json:"session_file"   toml:"session_file"`
	Timeout       timex.Duration `json:"timeout"        toml:"timeout"`
}

// Load applies defaults and then the file at path, if path is not empty.
// Values the file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerAddress != "" {
		cfg.ServerAddress = fc.ServerAddress
	}
	if fc.SessionFile != "" {
		cfg.SessionFile = fc.SessionFile
	}
	if fc.Timeout.Duration > 0 {
		cfg.Timeout = fc.Timeout.Duration
	}
	return cfg, nil
}
