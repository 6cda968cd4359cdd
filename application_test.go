package resextract

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/anywherelan/resextract/config"
	"github.com/anywherelan/resextract/resource"
)

func TestSync(t *testing.T) {
	ts := NewTestSuite(t)
	configPath := ts.writeConfig(
		config.Target{Type: "rcdata", Name: "deadbeef.bin", Destination: "out.bin"},
		config.Target{Type: "rcdata", Name: "hello.txt", Destination: "hello.txt"},
	)
	app := ts.newApp(configPath)

	results, err := app.Sync()
	ts.NoError(err)
	ts.Len(results, 2)
	for _, res := range results {
		ts.Equal(resource.StatusWritten, res.Status)
		ts.NoError(res.Err)
	}
	ts.Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}, ts.readFile("out.bin"))
	ts.Equal("hello", string(ts.readFile("hello.txt")))

	results, err = app.Sync()
	ts.NoError(err)
	for _, res := range results {
		ts.Equal(resource.StatusSkipped, res.Status)
	}

	// a fresh session compares with the files on disk
	app = ts.newApp(configPath)
	results, err = app.Sync()
	ts.NoError(err)
	for _, res := range results {
		ts.Equal(resource.StatusUnchanged, res.Status)
	}
}

func TestSync_partialFailure(t *testing.T) {
	ts := NewTestSuite(t)
	configPath := ts.writeConfig(
		config.Target{Type: "rcdata", Name: "missing.bin", Destination: "missing.bin"},
		config.Target{Type: "rcdata", Name: "deadbeef.bin", Destination: filepath.Join("no", "dir", "out.bin")},
		config.Target{Type: "rcdata", Name: "hello.txt", Destination: "hello.txt"},
	)
	app := ts.newApp(configPath)

	results, err := app.Sync()
	ts.Error(err)
	errs := multierr.Errors(err)
	ts.Len(errs, 2)
	ts.ErrorIs(errs[0], resource.ErrResourceNotFound)
	ts.ErrorIs(errs[1], resource.ErrDestinationUnavailable)

	ts.Len(results, 3)
	ts.Error(results[0].Err)
	ts.Error(results[1].Err)
	ts.NoError(results[2].Err)
	ts.Equal("hello", string(ts.readFile("hello.txt")))

	_, statErr := os.Stat(filepath.Join(ts.dataDir, "missing.bin"))
	ts.ErrorIs(statErr, os.ErrNotExist)
}

func TestSetupLoggerAndConfig(t *testing.T) {
	ts := NewTestSuite(t)

	app := New()
	_, err := app.SetupLoggerAndConfig(filepath.Join(ts.dataDir, "missing.json"), "")
	ts.ErrorIs(err, os.ErrNotExist)

	t.Setenv(config.AppDataDirEnvKey, ts.dataDir)
	_, err = app.SetupLoggerAndConfig("", "warn")
	ts.NoError(err)
	ts.Equal(ts.dataDir, app.Conf.DataDir())
	ts.Equal("warn", app.Conf.LoggerLevel)
	ts.Empty(app.Conf.Targets)
}
