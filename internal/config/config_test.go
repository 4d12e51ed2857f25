package config_test

import (
	"duelscope/internal/config"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	dir, err := ioutil.TempDir("", "duelscope")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.json")
	if err := ioutil.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReloadMissingFileUsesDefaults(t *testing.T) {
	var c config.Config
	if err := c.ReloadFromFile(filepath.Join(os.TempDir(), "duelscope-does-not-exist.json")); err != nil {
		t.Fatal(err)
	}

	if c.ListenAddr == "" || c.DatabasePath == "" || c.DataDir == "" {
		t.Errorf("expected defaults, got %+v", c)
	}

	if _, ok := c.GameModes[c.DefaultMode]; !ok {
		t.Errorf("default mode %q is not a known mode", c.DefaultMode)
	}
}

func TestReloadFromFile(t *testing.T) {
	path := writeConfig(t, `{
        "GameModes": {"arena": "Arena", "duel": "Duel"},
        "Schools": [{"Variant": 1, "ClassID": 2, "Name": "Blade"}],
        "StableColors": true,
        "ChartPatch": {"options": {"responsive": false}}
    }`)

	var c config.Config
	if err := c.ReloadFromFile(path); err != nil {
		t.Fatal(err)
	}

	if c.DefaultMode != "arena" {
		t.Errorf("expected first mode in lexical order, got %q", c.DefaultMode)
	}
	if len(c.Schools) != 1 || c.Schools[0].Name != "Blade" {
		t.Errorf("unexpected schools %v", c.Schools)
	}
	if !c.StableColors || len(c.ChartPatch) == 0 {
		t.Errorf("unexpected config %+v", c)
	}
}

func TestReloadEnvOverride(t *testing.T) {
	path := writeConfig(t, `{"ListenAddr": "127.0.0.1:1"}`)
	os.Setenv("DUELSCOPE_LISTEN_ADDR", "127.0.0.1:2")
	defer os.Unsetenv("DUELSCOPE_LISTEN_ADDR")

	var c config.Config
	if err := c.ReloadFromFile(path); err != nil {
		t.Fatal(err)
	}

	if c.ListenAddr != "127.0.0.1:2" {
		t.Errorf("expected env to win, got %s", c.ListenAddr)
	}
}

func TestReloadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{`)

	var c config.Config
	if err := c.ReloadFromFile(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLocation(t *testing.T) {
	c := config.Config{Timezone: "Not/AZone"}
	if _, err := c.Location(); err == nil {
		t.Error("expected an error on invalid timezone")
	}

	c.Timezone = "UTC"
	loc, err := c.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("unexpected location %v (%v)", loc, err)
	}
}
