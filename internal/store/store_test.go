package store

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryStore_LoadEmpty(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	s := NewMemoryStore()
	want := Settings{Hostname: "scoreboard", EnablePassword: "admin", StartWiFi: true}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStoreWith(Settings{Hostname: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Save(Settings{Hostname: "b"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Load()
		}()
	}
	wg.Wait()

	got, _ := s.Load()
	if got.Hostname != "b" {
		t.Errorf("Load().Hostname = %q, want %q", got.Hostname, "b")
	}
}

func TestFileStore_Missing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "Config.json"))

	_, err := s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Config.json")
	s := NewFileStore(path)

	want := Settings{Hostname: "court-1", EnablePassword: "pw", StartWiFi: true}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestFileStore_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")
	data := `{"hostname":"pi","enable_password":"secret","start_wifi":true}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Settings{Hostname: "pi", EnablePassword: "secret", StartWiFi: true}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestFileStore_SaveMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "Config.json"))

	if err := s.Save(Settings{}); err == nil {
		t.Error("Save() error = nil, want error for missing directory")
	}
}

func TestLoadOrDefault(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "Config.json")
	if err := os.WriteFile(corrupt, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		store      Store
		want       Settings
		wantLoaded bool
	}{
		{
			name:       "saved",
			store:      NewMemoryStoreWith(Settings{Hostname: "x", StartWiFi: true}),
			want:       Settings{Hostname: "x", StartWiFi: true},
			wantLoaded: true,
		},
		{
			name:  "empty",
			store: NewMemoryStore(),
		},
		{
			name:  "corrupt file",
			store: NewFileStore(corrupt),
		},
		{
			name:  "nil store",
			store: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, loaded := LoadOrDefault(tt.store, testLogger())
			if got != tt.want {
				t.Errorf("LoadOrDefault() = %+v, want %+v", got, tt.want)
			}
			if loaded != tt.wantLoaded {
				t.Errorf("LoadOrDefault() loaded = %v, want %v", loaded, tt.wantLoaded)
			}
		})
	}
}
