package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/anywherelan/resextract/resource"
)

const (
	AppConfigFilename = "config_resextract.json"
	AppDataDirectory  = "resextract"
	AppDataDirEnvKey  = "RESEXTRACT_DATA_DIR"

	DefaultFileMode = "0664"
)

type (
	Config struct {
		sync.RWMutex
		dataDir string
		path    string

		Version     string `json:"version"`
		LoggerLevel string `json:"loggerLevel" validate:"omitempty,oneof=debug info warn error dev"`
		// Octal permission bits for extracted files, e.g. "0664"
		FileMode string `json:"fileMode" validate:"filemode"`
		Atomic   bool   `json:"atomic"`
		// Return extracted files to the sudo invoking user, linux only
		Chown   bool     `json:"chown"`
		Targets []Target `json:"targets" validate:"dive"`
	}
	Target struct {
		Type string `json:"type" validate:"required"`
		Name string `json:"name" validate:"required"`
		Lang string `json:"lang,omitempty"`
		// Relative paths are resolved against the data directory
		Destination string `json:"destination" validate:"required"`
	}
)

func (c *Config) Save() error {
	c.RLock()
	defer c.RUnlock()
	return c.save()
}

func (c *Config) Validate() error {
	c.RLock()
	defer c.RUnlock()
	return validate.Struct(c)
}

// UpsertTarget adds t or replaces the target with the same destination.
func (c *Config) UpsertTarget(t Target) {
	c.Lock()
	defer c.Unlock()
	for i := range c.Targets {
		if c.Targets[i].Destination == t.Destination {
			c.Targets[i] = t
			return
		}
	}
	c.Targets = append(c.Targets, t)
}

func (c *Config) GetTargets() []Target {
	c.RLock()
	targets := make([]Target, len(c.Targets))
	copy(targets, c.Targets)
	c.RUnlock()
	return targets
}

// DestinationPath resolves the destination of t against the data directory.
func (c *Config) DestinationPath(t Target) string {
	if filepath.IsAbs(t.Destination) {
		return t.Destination
	}
	return filepath.Join(c.dataDir, t.Destination)
}

func (c *Config) ExtractorOptions() resource.Options {
	c.RLock()
	defer c.RUnlock()

	mode, err := ParseFileMode(c.FileMode)
	if err != nil {
		logger.Warnf("invalid file mode %q, using default: %v", c.FileMode, err)
		mode = resource.DefaultFileMode
	}
	return resource.Options{
		FileMode: mode,
		Atomic:   c.Atomic,
		Chown:    c.Chown,
	}
}

func (c *Config) DataDir() string {
	return c.dataDir
}

func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(c.dataDir, AppConfigFilename)
}

func (c *Config) LogLevel() zapcore.Level {
	level := c.LoggerLevel
	if c.LoggerLevel == "dev" {
		level = "debug"
	}
	lvl := zapcore.InfoLevel
	_ = lvl.Set(level)
	return lvl
}

func (c *Config) DevMode() bool {
	return c.LoggerLevel == "dev"
}

func (c *Config) save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %v", err)
	}
	err = os.WriteFile(c.Path(), data, filesPerm)
	if err != nil {
		return fmt.Errorf("save config: %v", err)
	}
	return nil
}

func (t Target) Ref() resource.Ref {
	return resource.NewRef(t.Type, t.Name).WithLang(t.Lang)
}

func (t Target) String() string {
	return t.Ref().String()
}

func ParseFileMode(s string) (os.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if mode == 0 || mode > 0777 {
		return 0, fmt.Errorf("mode %s out of range", s)
	}
	return os.FileMode(mode), nil
}
