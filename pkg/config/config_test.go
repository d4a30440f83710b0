package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "name: ${SAMPLE_NAME}\nlevel: 3\n")

	var s sample
	require.NoError(t, Load(path, &s))
	require.Equal(t, "from-env", s.Name)
	require.Equal(t, 3, s.Level)
}

func TestLoad_RunsValidator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "level: 1\n")

	var s sample
	err := Load(path, &s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")
}

func TestLoadWithDefaults_FallsBack(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "default.yaml")
	writeFile(t, fallback, "name: fallback\n")

	var s sample
	require.NoError(t, LoadWithDefaults(filepath.Join(dir, "missing.yaml"), fallback, &s))
	require.Equal(t, "fallback", s.Name)
}

func TestParse_EnvDefaults(t *testing.T) {
	t.Setenv("SAMPLE_SET", "given")
	t.Setenv("SAMPLE_EMPTY", "")

	var s sample
	require.NoError(t, Parse([]byte("name: ${SAMPLE_SET:-fallback}\n"), &s))
	require.Equal(t, "given", s.Name)

	require.NoError(t, Parse([]byte("name: ${SAMPLE_EMPTY:-fallback}\n"), &s))
	require.Equal(t, "fallback", s.Name)

	require.NoError(t, Parse([]byte("name: ${SAMPLE_UNSET_VAR:-fallback}\n"), &s))
	require.Equal(t, "fallback", s.Name)
}

func TestParse_KeepsExistingValues(t *testing.T) {
	s := sample{Name: "preset", Level: 7}
	require.NoError(t, Parse([]byte("level: 2\n"), &s))
	require.Equal(t, "preset", s.Name)
	require.Equal(t, 2, s.Level)
}

func TestLoadWithDefaults_BothMissing(t *testing.T) {
	dir := t.TempDir()
	var s sample
	err := LoadWithDefaults(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml"), &s)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "name: one\nlevel: 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *sample, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() *sample { return &sample{} }, func(s *sample) { got <- s })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "name: two\nlevel: 2\n")

	select {
	case s := <-got:
		require.Equal(t, "two", s.Name)
		require.Equal(t, 2, s.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	require.NoError(t, <-done)
}
