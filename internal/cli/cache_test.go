package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/naturelab/lifelist/pkg/config"
)

func TestCacheDirHonorsXDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", "lifelist")
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefaultsUnderHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/naturalist")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".cache", "lifelist")) {
		t.Errorf("cacheDir() = %q, want a .cache/lifelist suffix", dir)
	}
}

func TestEffectiveCacheDirPrefersConfig(t *testing.T) {
	a := &app{cfg: config.Default()}
	a.cfg.API.CacheDir = "/var/cache/lifelist"

	dir, err := a.effectiveCacheDir()
	if err != nil {
		t.Fatalf("effectiveCacheDir() error = %v", err)
	}
	if dir != "/var/cache/lifelist" {
		t.Errorf("effectiveCacheDir() = %q, want the configured directory", dir)
	}
}

func TestEffectiveCacheDirFallsBackToXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	a := &app{cfg: config.Default()}
	a.cfg.API.CacheDir = ""

	dir, err := a.effectiveCacheDir()
	if err != nil {
		t.Fatalf("effectiveCacheDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", "lifelist")
	if dir != want {
		t.Errorf("effectiveCacheDir() = %q, want %q", dir, want)
	}
}
