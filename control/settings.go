// control/settings.go
// Author: momentics <momentics@gmail.com>
//
// Typed codec settings over ConfigStore, with environment overrides.

package control

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/internal/logging"
)

// EnvPrefix is the default environment variable prefix.
const EnvPrefix = "HIOLOAD_CODEC"

// Config keys. Environment variables are the prefix, an underscore and the
// key upper-cased.
const (
	KeyMaxHeaderBytes   = "max_header_bytes"
	KeyMaxContentLength = "max_content_length"
	KeyReadChunk        = "read_chunk"
	KeyLogLevel         = "log_level"
	KeySubprotocol      = "subprotocol"
)

// Settings bounds and tunes the stream helpers.
type Settings struct {
	MaxHeaderBytes   int
	MaxContentLength uint64
	ReadChunk        int
	LogLevel         logging.Level
	Subprotocol      string
}

// DefaultSettings returns conservative limits for untrusted peers.
func DefaultSettings() Settings {
	return Settings{
		MaxHeaderBytes:   8192,
		MaxContentLength: 1 << 20,
		ReadChunk:        4096,
		LogLevel:         logging.Warn,
	}
}

// Limits converts the settings to parser limits.
func (s Settings) Limits() http1.Limits {
	return http1.Limits{MaxHeaderBytes: s.MaxHeaderBytes, MaxContentLength: s.MaxContentLength}
}

// Validate rejects settings the stream helpers cannot run with.
func (s Settings) Validate() error {
	if s.MaxHeaderBytes < 0 {
		return fmt.Errorf("%s: negative value %d", KeyMaxHeaderBytes, s.MaxHeaderBytes)
	}
	if s.ReadChunk <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", KeyReadChunk, s.ReadChunk)
	}
	return nil
}

// Map renders the settings as ConfigStore values.
func (s Settings) Map() map[string]any {
	return map[string]any{
		KeyMaxHeaderBytes:   s.MaxHeaderBytes,
		KeyMaxContentLength: s.MaxContentLength,
		KeyReadChunk:        s.ReadChunk,
		KeyLogLevel:         s.LogLevel,
		KeySubprotocol:      s.Subprotocol,
	}
}

// SettingsFromMap overlays m onto DefaultSettings. Values may be typed or strings.
func SettingsFromMap(m map[string]any) (Settings, error) {
	s := DefaultSettings()
	for key, v := range m {
		if err := s.set(key, v); err != nil {
			return s, err
		}
	}
	return s, s.Validate()
}

// SettingsFromEnv overlays PREFIX_KEY environment variables onto DefaultSettings.
func SettingsFromEnv(prefix string) (Settings, error) {
	m := make(map[string]any)
	for _, key := range []string{KeyMaxHeaderBytes, KeyMaxContentLength, KeyReadChunk, KeyLogLevel, KeySubprotocol} {
		if v, ok := os.LookupEnv(prefix + "_" + strings.ToUpper(key)); ok {
			m[key] = v
		}
	}
	return SettingsFromMap(m)
}

// SettingsOf reads the current settings out of a store.
func SettingsOf(cs *ConfigStore) (Settings, error) {
	return SettingsFromMap(cs.GetSnapshot())
}

// Watch calls fn with freshly decoded settings after every store update.
// Updates that fail to decode are reported through onErr and skipped.
func Watch(cs *ConfigStore, fn func(Settings), onErr func(error)) {
	cs.OnReload(func(snap map[string]any) {
		s, err := SettingsFromMap(snap)
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		fn(s)
	})
}

func (s *Settings) set(key string, v any) error {
	var err error
	switch key {
	case KeyMaxHeaderBytes:
		s.MaxHeaderBytes, err = asInt(v)
	case KeyReadChunk:
		s.ReadChunk, err = asInt(v)
	case KeyMaxContentLength:
		s.MaxContentLength, err = asUint(v)
	case KeyLogLevel:
		s.LogLevel, err = asLevel(v)
	case KeySubprotocol:
		str, ok := v.(string)
		if !ok {
			err = fmt.Errorf("unexpected type %T", v)
		}
		s.Subprotocol = str
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	return nil
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}

func asUint(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case int:
		if x < 0 {
			return 0, fmt.Errorf("negative value %d", x)
		}
		return uint64(x), nil
	case string:
		return strconv.ParseUint(strings.TrimSpace(x), 10, 64)
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}

func asLevel(v any) (logging.Level, error) {
	switch x := v.(type) {
	case logging.Level:
		return x, nil
	case string:
		if l, ok := logging.ParseLevel(strings.TrimSpace(x)); ok {
			return l, nil
		}
		return logging.Off, fmt.Errorf("unknown level %q", x)
	}
	return logging.Off, fmt.Errorf("unexpected type %T", v)
}
