package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ipfs/go-log/v2"
)

const (
	filesPerm = 0600
	dirsPerm  = 0700
)

var (
	logger   = log.Logger("resextract/config")
	validate = newValidator()
)

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := val.RegisterValidation("filemode", func(fl validator.FieldLevel) bool {
		_, err := ParseFileMode(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return val
}

func CalcAppDataDir() (dataDir string) {
	defer func() {
		logger.Debugf("using %s data directory", dataDir)
	}()

	if envDir := os.Getenv(AppDataDirEnvKey); envDir != "" {
		err := os.MkdirAll(envDir, dirsPerm)
		if err != nil {
			logger.Warnf("could not create data directory from env: %v", err)
		}
		return envDir
	}

	ex, err := os.Executable()
	if err != nil {
		logger.Errorf("find executable path: %v", err)
	} else {
		executableDir := filepath.Dir(ex)
		configPath := filepath.Join(executableDir, AppConfigFilename)
		if _, err := os.Stat(configPath); err == nil {
			return executableDir
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("could not get user config directory: %v", err)
		return ""
	}
	userDataDir := filepath.Join(userConfigDir, AppDataDirectory)
	err = os.MkdirAll(userDataDir, dirsPerm)
	if err != nil {
		logger.Warnf("could not create data directory in user dir: %v", err)
		return ""
	}

	return userDataDir
}

func NewConfigInDir(dir string) *Config {
	conf := new(Config)
	conf.dataDir = dir
	setDefaults(conf)
	return conf
}

// NewConfigAt creates a default config which is saved to path.
// Relative target destinations resolve against the directory of path.
func NewConfigAt(path string) *Config {
	conf := NewConfigInDir(filepath.Dir(path))
	conf.path = path
	return conf
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(filepath.Join(CalcAppDataDir(), AppConfigFilename))
}

func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf := new(Config)
	err = json.Unmarshal(data, conf)
	if err != nil {
		return nil, fmt.Errorf("invalid format: %v", err)
	}
	conf.dataDir = filepath.Dir(path)
	conf.path = path
	setDefaults(conf)

	err = conf.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return conf, nil
}

func setDefaults(conf *Config) {
	if conf.LoggerLevel == "" {
		conf.LoggerLevel = "info"
	}
	if conf.FileMode == "" {
		conf.FileMode = DefaultFileMode
	}
	if conf.Targets == nil {
		conf.Targets = make([]Target, 0)
	}
	conf.Version = Version
}
