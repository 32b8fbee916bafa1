package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderUnit(t *testing.T) {
	got, err := renderUnit(unitData{
		BinPath: "/home/u/.local/bin/gohan",
		WorkDir: "/home/u/.gohan",
		EnvFile: "/home/u/.gohan/config",
	})
	if err != nil {
		t.Fatalf("renderUnit: %v", err)
	}
	for _, want := range []string{
		"ExecStart=/home/u/.local/bin/gohan run\n",
		"WorkingDirectory=/home/u/.gohan\n",
		"EnvironmentFile=-/home/u/.gohan/config\n",
		"WantedBy=default.target\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("unit missing %q:\n%s", want, got)
		}
	}
}

func TestResolveWorkDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := filepath.Join(t.TempDir(), "config")

	// No config file.
	if got := resolveWorkDir(cfg); got != filepath.Join(home, ".gohan") {
		t.Errorf("got %q, want ~/.gohan", got)
	}

	os.WriteFile(cfg, []byte("DATABASE_PATH=/var/lib/gohan.db\n"), 0600)
	if got := resolveWorkDir(cfg); got != filepath.Join(home, ".gohan") {
		t.Errorf("absolute path: got %q, want ~/.gohan", got)
	}

	os.WriteFile(cfg, []byte("DATABASE_PATH=./gohan.db\n"), 0600)
	wd, _ := os.Getwd()
	if got := resolveWorkDir(cfg); got != wd {
		t.Errorf("relative path: got %q, want %q", got, wd)
	}
}

func TestSeedConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")
	dst := filepath.Join(dir, "home", "config")
	os.WriteFile(src, []byte("TOKEN=abc\n"), 0600)

	if err := seedConfig(src, dst); err != nil {
		t.Fatalf("seedConfig: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "TOKEN=abc\n" {
		t.Fatalf("seeded config = %q, %v", data, err)
	}

	os.WriteFile(src, []byte("TOKEN=changed\n"), 0600)
	seedConfig(src, dst)
	data, _ = os.ReadFile(dst)
	if string(data) != "TOKEN=abc\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}
