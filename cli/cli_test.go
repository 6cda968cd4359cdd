package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anywherelan/resextract/config"
	"github.com/anywherelan/resextract/resource"
)

func testModule() resource.Module {
	return resource.NewFSModule(fstest.MapFS{
		"rcdata/deadbeef.bin": {Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		"icon/app.png":        {Data: []byte("png")},
	}, "")
}

func newTestApp(t *testing.T) (*Application, *bytes.Buffer, string) {
	dir := t.TempDir()
	t.Setenv(config.AppDataDirEnvKey, dir)
	t.Setenv("RESEXTRACT_CONFIG", "")
	out := new(bytes.Buffer)
	return newApplication(testModule(), out), out, dir
}

func TestExtractCommand(t *testing.T) {
	app, out, dir := newTestApp(t)
	dst := filepath.Join(dir, "out.bin")

	err := app.Run([]string{"resextract", "extract", "--name", "deadbeef.bin", "--out", dst})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "rcdata/deadbeef.bin -> "+dst+": written")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)

	out.Reset()
	err = app.Run([]string{"resextract", "extract", "--name", "deadbeef.bin", "--out", dst, "--if-changed"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), ": unchanged")
}

func TestExtractCommand_typeAndMode(t *testing.T) {
	app, _, dir := newTestApp(t)
	dst := filepath.Join(dir, "app.png")

	err := app.Run([]string{"resextract", "extract", "--type", "icon", "--name", "app.png", "-o", dst, "--mode", "0600", "--atomic"})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	err = app.Run([]string{"resextract", "extract", "--name", "app.png", "-o", dst, "--mode", "999"})
	require.Error(t, err)
}

func TestExtractCommand_errors(t *testing.T) {
	app, _, dir := newTestApp(t)

	err := app.Run([]string{"resextract", "extract", "--name", "missing.bin", "--out", filepath.Join(dir, "out.bin")})
	require.ErrorIs(t, err, resource.ErrResourceNotFound)

	err = app.Run([]string{"resextract", "extract", "--name", "deadbeef.bin", "--out", filepath.Join(dir, "no", "out.bin")})
	require.ErrorIs(t, err, resource.ErrDestinationUnavailable)

	err = app.Run([]string{"resextract", "extract", "--name", "deadbeef.bin"})
	require.Error(t, err)
}

func TestSyncCommand(t *testing.T) {
	app, out, dir := newTestApp(t)
	configPath := filepath.Join(dir, "sync.json")

	err := app.Run([]string{"resextract", "--config", configPath, "config", "init"})
	require.NoError(t, err)
	err = app.Run([]string{"resextract", "--config", configPath, "config", "init"})
	require.Error(t, err)

	out.Reset()
	err = app.Run([]string{"resextract", "--config", configPath, "sync"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no targets")

	conf, err := config.LoadConfigFrom(configPath)
	require.NoError(t, err)
	conf.UpsertTarget(config.Target{Type: "rcdata", Name: "deadbeef.bin", Destination: "out.bin"})
	conf.UpsertTarget(config.Target{Type: "rcdata", Name: "missing.bin", Destination: "missing.bin"})
	require.NoError(t, conf.Save())

	out.Reset()
	err = app.Run([]string{"resextract", "--config", configPath, "sync"})
	require.ErrorIs(t, err, resource.ErrResourceNotFound)
	assert.Contains(t, out.String(), "written")
	assert.Contains(t, out.String(), "failed")

	data, err := os.ReadFile(filepath.Join(dir, "out.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)
}

func TestConfigInit_defaultDir(t *testing.T) {
	app, out, dir := newTestApp(t)

	err := app.Run([]string{"resextract", "config", "init"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), filepath.Join(dir, config.AppConfigFilename))

	err = app.Run([]string{"resextract", "config", "init", "--force"})
	require.NoError(t, err)
}
