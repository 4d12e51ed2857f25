package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// School names a class variant, the logs only contain numeric IDs.
type School struct {
	Variant, ClassID int
	Name             string
}

type Config struct {
	// ListenAddr is the address the dashboard HTTP server binds to.
	ListenAddr string

	// DatabasePath is the SQLite file holding imported battles.
	DatabasePath string

	// DataDir contains one directory per game mode, each holding the *.txt
	// duel logs.
	DataDir string

	// ResourcesDir contains the migrations, templates, and locales.
	ResourcesDir string

	// GameModes maps a mode (DataDir subdirectory) to its display name.
	GameModes   map[string]string
	DefaultMode string

	Schools []School

	// StableColors derives chart series colors from their name instead of
	// picking random ones on each render.
	StableColors bool

	// APIURL is the server the render command fetches win rates from.
	APIURL string

	// Timezone used to interpret date filters, defaults to the local zone.
	Timezone string

	// Intro is a Markdown text shown on top of the dashboard.
	Intro string

	// ChartPatch is a JSON merge patch applied to the exported chart config.
	ChartPatch json.RawMessage
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

// Location returns the time zone date filters are expressed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return loc, nil
}

// MigrationsDir returns the golang-migrate source directory.
func (c *Config) MigrationsDir() string {
	return filepath.Join(c.ResourcesDir, "migrations")
}

func (c *Config) setDefaults() {
	defaults := []struct {
		dst *string
		def string
	}{
		{&c.ListenAddr, "127.0.0.1:5000"},
		{&c.DatabasePath, "./duelscope.db"},
		{&c.DataDir, "./data"},
		{&c.ResourcesDir, "./resources"},
		{&c.APIURL, "http://127.0.0.1:5000"},
	}

	for _, v := range defaults {
		if *v.dst == "" {
			*v.dst = v.def
		}
	}

	if len(c.GameModes) == 0 {
		c.GameModes = map[string]string{"test_pvp": "Test PvP"}
	}

	if _, ok := c.GameModes[c.DefaultMode]; !ok {
		c.DefaultMode = ""
		for k := range c.GameModes {
			if c.DefaultMode == "" || k < c.DefaultMode {
				c.DefaultMode = k
			}
		}
	}
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"DUELSCOPE_LISTEN_ADDR", &c.ListenAddr},
		{"DUELSCOPE_DB", &c.DatabasePath},
		{"DUELSCOPE_DATA_DIR", &c.DataDir},
		{"DUELSCOPE_RESOURCES_DIR", &c.ResourcesDir},
		{"DUELSCOPE_API_URL", &c.APIURL},
		{"DUELSCOPE_TZ", &c.Timezone},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}

	return c.ReloadFromFile(path)
}

// ReloadFromFile replaces the config with the contents of the JSON file at
// path, a missing file yields the default config.
func (c *Config) ReloadFromFile(path string) error {
	defer c.setDefaults()
	defer c.expandFromEnv()

	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		*c = Config{}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	*c = Config{}
	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("unable to parse %s: %w", path, err)
	}

	return nil
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "duelscope")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
