// Package service installs gohan as a systemd user service.
package service

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/chris/gohan/config"
	"github.com/joho/godotenv"
)

const unitName = "gohan.service"

func binDest() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "bin", "gohan")
}

func unitDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "systemd", "user")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "systemd", "user")
}

func unitPath() string {
	return filepath.Join(unitDir(), unitName)
}

// Install copies the binary to ~/.local/bin, seeds ~/.gohan/config from .env
// if needed, writes the unit file and enables it.
func Install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}

	input, err := os.ReadFile(exe)
	if err != nil {
		return fmt.Errorf("reading binary: %w", err)
	}
	dest := binDest()
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, input, 0755); err != nil {
		return fmt.Errorf("copying binary to %s: %w", dest, err)
	}
	fmt.Printf("installed binary to %s\n", dest)

	if err := seedConfig(".env", config.ConfigFile()); err != nil {
		return err
	}

	unit, err := renderUnit(unitData{
		BinPath: dest,
		WorkDir: resolveWorkDir(config.ConfigFile()),
		EnvFile: config.ConfigFile(),
	})
	if err != nil {
		return fmt.Errorf("generating unit: %w", err)
	}
	if err := os.MkdirAll(unitDir(), 0755); err != nil {
		return fmt.Errorf("creating unit dir: %w", err)
	}
	if err := os.WriteFile(unitPath(), []byte(unit), 0644); err != nil {
		return fmt.Errorf("writing unit: %w", err)
	}
	fmt.Printf("wrote unit to %s\n", unitPath())

	if err := systemctl("daemon-reload"); err != nil {
		return err
	}
	if err := systemctl("enable", "--now", unitName); err != nil {
		return fmt.Errorf("enabling service: %w", err)
	}
	fmt.Println("service enabled and started")
	return nil
}

// seedConfig copies src to dst unless dst already exists.
func seedConfig(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		fmt.Printf("config already exists at %s\n", dst)
		return nil
	}
	envData, err := os.ReadFile(src)
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(dst, envData, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("seeded config from %s -> %s\n", src, dst)
	return nil
}

// resolveWorkDir picks the service's working directory. A relative
// DATABASE_PATH in the runtime config is resolved against the directory
// install was run from; otherwise ~/.gohan is used.
func resolveWorkDir(configFile string) string {
	envVars, _ := godotenv.Read(configFile)
	if dbPath, ok := envVars["DATABASE_PATH"]; ok && !filepath.IsAbs(dbPath) {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return config.ConfigDir()
}

// Uninstall stops and disables the unit, then removes it and the binary.
func Uninstall() error {
	if _, err := os.Stat(unitPath()); err == nil {
		if err := systemctl("disable", "--now", unitName); err != nil {
			fmt.Fprintf(os.Stderr, "warning: disable failed: %v\n", err)
		}
		if err := os.Remove(unitPath()); err != nil {
			return fmt.Errorf("removing unit: %w", err)
		}
		_ = systemctl("daemon-reload")
		fmt.Printf("removed %s\n", unitPath())
	} else {
		fmt.Println("unit not found, skipping")
	}

	if _, err := os.Stat(binDest()); err == nil {
		if err := os.Remove(binDest()); err != nil {
			return fmt.Errorf("removing binary: %w", err)
		}
		fmt.Printf("removed %s\n", binDest())
	} else {
		fmt.Println("binary not found, skipping")
	}

	fmt.Println("uninstalled")
	return nil
}

func Status() error {
	cmd := exec.Command("systemctl", "--user", "status", "--no-pager", unitName)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// systemctl status exits non-zero for stopped units.
	_ = cmd.Run()
	return nil
}

// Logs follows the unit's journal.
func Logs() error {
	cmd := exec.Command("journalctl", "--user", "-u", unitName, "-f")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func systemctl(args ...string) error {
	cmd := exec.Command("systemctl", append([]string{"--user"}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("systemctl --user %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return nil
}

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description=gohan meal log Discord bot
After=network-online.target
Wants=network-online.target

[Service]
ExecStart={{.BinPath}} run
WorkingDirectory={{.WorkDir}}
EnvironmentFile=-{{.EnvFile}}
Restart=on-failure
RestartSec=10

[Install]
WantedBy=default.target
`))

type unitData struct {
	BinPath string
	WorkDir string
	EnvFile string
}

func renderUnit(d unitData) (string, error) {
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
