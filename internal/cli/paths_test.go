package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	tests := []struct {
		name string
		env  string
		fn   func() (string, error)
		xdg  string
		want string
	}{
		{"cache default", "XDG_CACHE_HOME", cacheDir, "", filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", cacheDir, "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
		{"config default", "XDG_CONFIG_HOME", configDir, "", filepath.Join(home, ".config", appName)},
		{"config xdg", "XDG_CONFIG_HOME", configDir, "/tmp/xdg-config", filepath.Join("/tmp/xdg-config", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.xdg)
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	// loadConfig("") reads config.toml from this directory.
	if want := filepath.Join("/tmp/xdg-config", "nestindex"); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}
