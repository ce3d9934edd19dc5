// Environment-driven configuration for the Go host.
package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"golang.org/x/xerrors"
)

// Config holds the Go host settings. Every field is read from a BLOBTOOLS_ prefixed
// environment variable.
type Config struct {
	// zerolog level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Human-readable console output instead of JSON.
	LogConsole bool `env:"LOG_CONSOLE" envDefault:"true"`

	// Origin embedded in object-URL handles.
	ObjectURLOrigin string `env:"OBJECT_URL_ORIGIN" envDefault:"null"`
	// Register the object-URL table as a prefixed provider instead of the canonical one.
	ObjectURLPrefixed bool `env:"OBJECT_URL_PREFIXED" envDefault:"false"`

	// Capability switches used to simulate restricted hosts.
	DisableNativeBlob       bool `env:"DISABLE_NATIVE_BLOB" envDefault:"false"`
	DisableBlobBuilder      bool `env:"DISABLE_BLOB_BUILDER" envDefault:"false"`
	DisableBinaryStringRead bool `env:"DISABLE_BINARY_STRING_READ" envDefault:"false"`
	DisableNativeToBlob     bool `env:"DISABLE_NATIVE_TO_BLOB" envDefault:"false"`

	// Quality used for lossy encodes when none is requested.
	DefaultJPEGQuality float64 `env:"DEFAULT_JPEG_QUALITY" envDefault:"0.92"`

	// Remote image loading.
	HTTPUserAgent     string `env:"HTTP_USER_AGENT" envDefault:"blobtools-go"`
	HTTPAuthorization string `env:"HTTP_AUTHORIZATION"`
	AllowFileRefs     bool   `env:"ALLOW_FILE_REFS" envDefault:"false"`

	// Whether the content engine tries every decoder for blobs with no content-type.
	SniffContent bool `env:"SNIFF_CONTENT" envDefault:"false"`
}

// Prefix of every environment variable read by Load.
const EnvPrefix = "BLOBTOOLS_"

// Default returns the configuration with every default applied and no environment
// lookups.
func Default() Config {
	var cfg Config
	// Defaults only; parsing an empty environment cannot fail for this struct.
	_ = env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{},
	})
	return cfg
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, xerrors.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
