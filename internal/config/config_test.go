package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow/compiler/gen"
)

func write(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "classflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	l, err := Load("")
	require.NoError(t, err)
	c := l.Config()
	assert.Equal(t, "java", c.Gen.Dialect)
	assert.Equal(t, "model", c.Gen.Package)
	assert.Equal(t, "http://localhost:8080", c.Runner.URL)
	assert.Equal(t, 30*time.Second, c.Runner.Timeout)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 10, c.Log.MaxSize)
	assert.Empty(t, l.File())
}

func TestLoad_File(t *testing.T) {
	path := write(t, t.TempDir(), `
gen:
  dialect: go
  package: garage
  workers: 2
runner:
  url: https://exec.example.com
  timeout: 5s
log:
  level: debug
  file: classflow.log
  compress: true
`)
	l, err := Load(path)
	require.NoError(t, err)
	c := l.Config()
	assert.Equal(t, "go", c.Gen.Dialect)
	assert.Equal(t, "garage", c.Gen.Package)
	assert.Equal(t, 2, c.Gen.Workers)
	assert.Equal(t, "https://exec.example.com", c.Runner.URL)
	assert.Equal(t, 5*time.Second, c.Runner.Timeout)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "classflow.log", c.Log.File)
	assert.True(t, c.Log.Compress)
	assert.Equal(t, 3, c.Log.MaxBackups)
	assert.Equal(t, path, l.File())
}

func TestLoad_Env(t *testing.T) {
	path := write(t, t.TempDir(), "runner:\n  url: http://file\n")
	t.Setenv("CLASSFLOW_RUNNER_URL", "http://env")
	t.Setenv("CLASSFLOW_GEN_DIALECT", "golang")

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env", l.Config().Runner.URL)
	assert.Equal(t, "golang", l.Config().Gen.Dialect)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := write(t, t.TempDir(), "gen: [unclosed\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoader_Set(t *testing.T) {
	t.Chdir(t.TempDir())
	l, err := Load("")
	require.NoError(t, err)

	require.NoError(t, l.Set("gen.target", "out"))
	assert.Equal(t, "out", l.Config().Gen.Target)
}

func TestGenConfig(t *testing.T) {
	tests := []struct {
		dialect string
		name    string
		wantErr bool
	}{
		{"", "java", false},
		{"Java", "java", false},
		{"go", "golang", false},
		{"golang", "golang", false},
		{"cobol", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, err := GenConfig{Dialect: tt.dialect}.NewDialect()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}

	opts, err := GenConfig{Dialect: "go", Package: "garage", Header: "generated", Target: "out", Workers: 3}.Options()
	require.NoError(t, err)
	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, "golang", c.Dialect.Name())
	assert.Equal(t, "garage", c.Package)
	assert.Equal(t, "generated", c.Header)
	assert.Equal(t, "out", c.Target)
	assert.Equal(t, 3, c.Workers)

	_, err = GenConfig{Dialect: "cobol"}.Options()
	assert.Error(t, err)
}

func TestLoader_Watch(t *testing.T) {
	path := write(t, t.TempDir(), "gen:\n  package: before\n")
	l, err := Load(path)
	require.NoError(t, err)

	changed := make(chan Config, 4)
	l.Watch(func(c Config, err error) {
		if err != nil {
			return
		}
		select {
		case changed <- c:
		default:
		}
	})
	require.NoError(t, os.WriteFile(path, []byte("gen:\n  package: after\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Gen.Package != "after" {
				continue
			}
			assert.Equal(t, "after", l.Config().Gen.Package)
			return
		case <-timeout:
			t.Fatal("config change not observed")
		}
	}
}
