package resextract

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/anywherelan/resextract/config"
	"github.com/anywherelan/resextract/resource"
)

type TestSuite struct {
	*require.Assertions

	t       testing.TB
	dataDir string
	module  resource.Module
}

func NewTestSuite(t testing.TB) *TestSuite {
	ts := &TestSuite{
		t:          t,
		Assertions: require.New(t),
		dataDir:    t.TempDir(),
		module: resource.NewFSModule(fstest.MapFS{
			"rcdata/deadbeef.bin": {Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
			"rcdata/hello.txt":    {Data: []byte("hello")},
		}, ""),
	}

	return ts
}

func (ts *TestSuite) writeConfig(targets ...config.Target) string {
	conf := config.NewConfigInDir(ts.dataDir)
	for _, target := range targets {
		conf.UpsertTarget(target)
	}
	ts.NoError(conf.Save())
	return conf.Path()
}

func (ts *TestSuite) newApp(configPath string) *Application {
	app := New()
	_, err := app.SetupLoggerAndConfig(configPath, "debug")
	ts.NoError(err)
	app.Init(ts.module)
	return app
}

func (ts *TestSuite) readFile(name string) []byte {
	data, err := os.ReadFile(filepath.Join(ts.dataDir, name))
	ts.NoError(err)
	return data
}
