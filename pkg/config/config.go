// Package config loads layered configuration for the lifelist tool.
//
// Settings resolve with documented precedence: explicit per-call values
// override per-user defaults, which override global defaults. Each layer is
// an [Overlay] whose nil fields mean "not set here"; [Resolve] applies the
// layers over the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/naturelab/lifelist/pkg/lserr"
)

// Config is the fully resolved configuration.
type Config struct {
	API     APIConfig
	User    UserConfig
	Display DisplayConfig
	Server  ServerConfig
}

// APIConfig configures the iNaturalist API client.
type APIConfig struct {
	// BaseURL is the API root.
	BaseURL string
	// CacheBackend selects response caching: "file", "memory", "redis", or
	// "none".
	CacheBackend string
	// CacheDir is the file cache directory; empty uses ~/.cache/lifelist.
	CacheDir string
	// CacheTTL is how long API responses stay cached.
	CacheTTL time.Duration
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string
}

// UserConfig identifies the user behind "my"/"me" and "home" query clauses.
type UserConfig struct {
	Login       string
	HomePlaceID int
}

// DisplayConfig holds default listing and rendering settings.
type DisplayConfig struct {
	// PerPage is the page size for listings.
	PerPage int
	// Policy is the default rank filter policy.
	Policy string
	// Sort and Order are the default leaf/child ordering.
	Sort  string
	Order string
	// Column and adornment toggles, matching the renderer's options.
	WithURL    bool
	WithIndex  bool
	WithDirect bool
	WithCommon bool
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr       string
	SessionTTL time.Duration
}

// Default returns the built-in global defaults.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:      "https://api.inaturalist.org/v1",
			CacheBackend: "file",
			CacheTTL:     time.Hour,
		},
		Display: DisplayConfig{
			PerPage: 20,
			Policy:  "leaf",
			WithURL: true,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: time.Hour,
		},
	}
}

// Overlay is one configuration layer. Nil fields leave the lower layer's
// value in place.
type Overlay struct {
	API     APIOverlay     `toml:"api"`
	User    UserOverlay    `toml:"user"`
	Display DisplayOverlay `toml:"display"`
	Server  ServerOverlay  `toml:"server"`
}

// APIOverlay overrides APIConfig fields.
type APIOverlay struct {
	BaseURL      *string   `toml:"base_url"`
	CacheBackend *string   `toml:"cache_backend"`
	CacheDir     *string   `toml:"cache_dir"`
	CacheTTL     *duration `toml:"cache_ttl"`
	RedisAddr    *string   `toml:"redis_addr"`
}

// UserOverlay overrides UserConfig fields.
type UserOverlay struct {
	Login       *string `toml:"login"`
	HomePlaceID *int    `toml:"home_place_id"`
}

// DisplayOverlay overrides DisplayConfig fields.
type DisplayOverlay struct {
	PerPage    *int    `toml:"per_page"`
	Policy     *string `toml:"policy"`
	Sort       *string `toml:"sort"`
	Order      *string `toml:"order"`
	WithURL    *bool   `toml:"with_url"`
	WithIndex  *bool   `toml:"with_index"`
	WithDirect *bool   `toml:"with_direct"`
	WithCommon *bool   `toml:"with_common"`
}

// ServerOverlay overrides ServerConfig fields.
type ServerOverlay struct {
	Addr       *string   `toml:"addr"`
	SessionTTL *duration `toml:"session_ttl"`
}

// duration parses TOML durations like "30m" or "1h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// DefaultPath is the global config file location,
// ~/.config/lifelist/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "lifelist", "config.toml"), nil
}

// LoadFile reads one overlay from a TOML file. A missing file is an empty
// overlay, not an error, so absent config files fall through to defaults.
func LoadFile(path string) (Overlay, error) {
	var overlay Overlay
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return overlay, nil
	}
	if err != nil {
		return overlay, lserr.Wrap(lserr.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return overlay, lserr.Wrap(lserr.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return overlay, nil
}

// Resolve applies overlays over the built-in defaults, later overlays
// winning. The conventional order is global file, then per-user defaults,
// then per-call flags.
func Resolve(overlays ...Overlay) Config {
	cfg := Default()
	for _, o := range overlays {
		applyString(&cfg.API.BaseURL, o.API.BaseURL)
		applyString(&cfg.API.CacheBackend, o.API.CacheBackend)
		applyString(&cfg.API.CacheDir, o.API.CacheDir)
		applyDuration(&cfg.API.CacheTTL, o.API.CacheTTL)
		applyString(&cfg.API.RedisAddr, o.API.RedisAddr)

		applyString(&cfg.User.Login, o.User.Login)
		applyInt(&cfg.User.HomePlaceID, o.User.HomePlaceID)

		applyInt(&cfg.Display.PerPage, o.Display.PerPage)
		applyString(&cfg.Display.Policy, o.Display.Policy)
		applyString(&cfg.Display.Sort, o.Display.Sort)
		applyString(&cfg.Display.Order, o.Display.Order)
		applyBool(&cfg.Display.WithURL, o.Display.WithURL)
		applyBool(&cfg.Display.WithIndex, o.Display.WithIndex)
		applyBool(&cfg.Display.WithDirect, o.Display.WithDirect)
		applyBool(&cfg.Display.WithCommon, o.Display.WithCommon)

		applyString(&cfg.Server.Addr, o.Server.Addr)
		applyDuration(&cfg.Server.SessionTTL, o.Server.SessionTTL)
	}
	return cfg
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func applyDuration(dst *time.Duration, src *duration) {
	if src != nil {
		*dst = time.Duration(*src)
	}
}
