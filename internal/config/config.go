package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	DBPath               string `toml:"db_path,omitempty"`
	Theme                string `toml:"theme,omitempty"` // markdown render style: dark or light
	EventBuffer          int    `toml:"event_buffer,omitempty"`
	DesktopNotifications bool   `toml:"desktop_notifications,omitempty"`
}

func Default() Config {
	return Config{
		DBPath:      filepath.Join(dataDir(), "studyping.db"),
		Theme:       "dark",
		EventBuffer: 16,
	}
}

// Load layers the defaults, the optional config file, and finally the
// environment. A missing config file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path := FilePath()
	raw, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return fromEnv(cfg), nil
}

// FilePath is where the config file is looked up, honoring XDG_CONFIG_HOME.
func FilePath() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "studyping", "config.toml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "studyping", "config.toml")
}

func dataDir() string {
	base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "studyping")
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "studyping")
}

func fromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("STUDYPING_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPING_THEME")); v != "" {
		cfg.Theme = v
	}
	if v, ok := getEnvInt("STUDYPING_EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	if v, ok := getEnvBool("STUDYPING_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
