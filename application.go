package resextract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anywherelan/resextract/config"
	"github.com/anywherelan/resextract/resource"
)

type Application struct {
	logger *log.ZapEventLogger
	Conf   *config.Config

	Extractor *resource.Extractor
	Session   *resource.Session
}

type SyncResult struct {
	Target      config.Target
	Destination string
	Status      resource.Status
	Err         error
}

func New() *Application {
	return &Application{
		logger: log.Logger("resextract"),
	}
}

// Init prepares extraction from module with the options of the loaded config.
func (a *Application) Init(module resource.Module) {
	a.Extractor = resource.New(module, a.Conf.ExtractorOptions())
	a.Session = resource.NewSession(a.Extractor)
}

// SetupLoggerAndConfig loads the config from configPath, or from the data directory when it is empty.
// A missing config in the data directory is not an error, defaults are used instead.
// A non-empty logLevel overrides the configured level.
func (a *Application) SetupLoggerAndConfig(configPath, logLevel string) (*log.ZapEventLogger, error) {
	// Config
	var (
		conf *config.Config
		err  error
	)
	if configPath != "" {
		conf, err = config.LoadConfigFrom(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		dataDir := config.CalcAppDataDir()
		conf, err = config.LoadConfigFrom(filepath.Join(dataDir, config.AppConfigFilename))
		if errors.Is(err, os.ErrNotExist) {
			conf = config.NewConfigInDir(dataDir)
		} else if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if logLevel != "" {
		conf.LoggerLevel = logLevel
	}

	// Logger
	syncer := zapcore.Lock(zapcore.AddSync(os.Stderr))
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	zapCore := zapcore.NewCore(consoleEncoder, syncer, zapcore.DebugLevel)

	lvl := conf.LogLevel()
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if conf.DevMode() {
		opts = append(opts, zap.Development())
	}

	log.SetupLogging(zapCore, func(name string) zapcore.Level {
		switch {
		case strings.HasPrefix(name, "resextract"):
			return lvl
		default:
			return zapcore.InfoLevel
		}
	},
		opts...,
	)

	a.logger = log.Logger("resextract")
	a.Conf = conf

	return a.logger, nil
}

// Sync extracts every configured target, skipping the ones already extracted by this Application.
// All failures are returned together, the remaining targets are still processed.
func (a *Application) Sync() ([]SyncResult, error) {
	targets := a.Conf.GetTargets()
	results := make([]SyncResult, 0, len(targets))

	var errs error
	for _, target := range targets {
		dst := a.Conf.DestinationPath(target)
		status, err := a.Session.Extract(dst, target.Ref())
		if err != nil {
			a.logger.Errorf("sync %s: %v", target, err)
			errs = multierr.Append(errs, err)
		} else {
			a.logger.Infof("%s -> %s: %s", target, dst, status)
		}
		results = append(results, SyncResult{
			Target:      target,
			Destination: dst,
			Status:      status,
			Err:         err,
		})
	}

	return results, errs
}
