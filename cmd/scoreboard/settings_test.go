package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpalmerr/scoreboard/internal/store"
)

func TestSettings_ShowMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")

	output, err := execute(t, "settings", "show", "--file", path)
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	if !strings.Contains(output, "Enable password: (not set)") {
		t.Errorf("output = %q, want unset password", output)
	}
}

func TestSettings_SetThenShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")

	if _, err := execute(t, "settings", "set", "--file", path,
		"--hostname", "court-1", "--enable-password", "hunter2", "--start-wifi"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}

	got, err := store.NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := store.Settings{Hostname: "court-1", EnablePassword: "hunter2", StartWiFi: true}
	if got != want {
		t.Errorf("saved settings = %+v, want %+v", got, want)
	}

	output, err := execute(t, "settings", "show", "--file", path)
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	for _, phrase := range []string{"Hostname:        court-1", "Enable password: ********", "Start WiFi:      true"} {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
	if strings.Contains(output, "hunter2") {
		t.Error("show printed the enable password")
	}
}

func TestSettings_SetKeepsOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")
	if err := store.NewFileStore(path).Save(store.Settings{Hostname: "court-2", EnablePassword: "old"}); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "settings", "set", "--file", path, "--start-wifi"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}

	got, err := store.NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := store.Settings{Hostname: "court-2", EnablePassword: "old", StartWiFi: true}
	if got != want {
		t.Errorf("saved settings = %+v, want %+v", got, want)
	}
}

func TestSettings_SetNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")

	_, err := execute(t, "settings", "set", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "nothing to set") {
		t.Errorf("settings set error = %v, want nothing to set", err)
	}
}
