package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultEventThreshold is the number of files a single capture time must
	// exceed to get its own day folder.
	DefaultEventThreshold = 7

	DefaultMetadataType = "exif"
	DefaultJournalType  = "none"
)

// Config represents the main configuration for gallerysort.
// Every field has a default; a config file only needs the values it changes.
type Config struct {
	BaseDir        string           `toml:"base_dir"`
	LogDir         string           `toml:"log_dir"`
	EventThreshold int              `toml:"event_threshold"`
	Sources        []string         `toml:"sources"`
	Metadata       MetadataConfig   `toml:"metadata"`
	Journal        JournalConfig    `toml:"journal"`
	Filesystem     FilesystemConfig `toml:"filesystem"`
	S3             S3Config         `toml:"s3"`
}

// MetadataConfig selects the embedded-metadata reader.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type MetadataConfig struct {
	Type         string `toml:"type"`                    // "exif" (default) or "exiftool"
	ExifToolPath string `toml:"exiftool_path,omitempty"` // only used for type=exiftool; looked up on PATH when empty
}

// JournalConfig represents configuration for the run journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type string `toml:"type"`           // "none" (default), "sqlite" or "memory"
	Path string `toml:"path,omitempty"` // only used for type=sqlite; defaults to <base_dir>/journal.db
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// S3Config holds connection settings for s3:// destinations.
// Empty fields fall back to the AWS SDK's default configuration chain.
type S3Config struct {
	Region          string `toml:"region,omitempty"`
	Endpoint        string `toml:"endpoint,omitempty"`
	UsePathStyle    bool   `toml:"use_path_style,omitempty"`
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
}

// NewConfig creates a new Config rooted at baseDir with default values.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:        baseDir,
		LogDir:         filepath.Join(baseDir, "log"),
		EventThreshold: DefaultEventThreshold,
		Sources:        []string{"./"},
		Metadata:       MetadataConfig{Type: DefaultMetadataType},
		Journal:        JournalConfig{Type: DefaultJournalType},
	}
}

// Validate checks values that cannot be fixed up by defaults.
func (c *Config) Validate() error {
	if c.EventThreshold < 0 {
		return fmt.Errorf("event_threshold must not be negative, got %d", c.EventThreshold)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source directory is required")
	}
	switch c.Journal.Type {
	case "none", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown journal type: %s", c.Journal.Type)
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		return fmt.Errorf("s3 access_key_id and secret_access_key must be set together")
	}
	return nil
}

// JournalPath returns the sqlite journal location.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(c.BaseDir, "journal.db")
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if err := m.Decode(r, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode decodes the provided reader on top of cfg. Keys missing from the
// input leave the corresponding fields of cfg untouched.
func (m *Manager) Decode(r io.Reader, cfg *Config) error {
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config file at path on top of defaults.
// A missing file is not an error: defaults are returned as they are.
func Load(path string, defaults *Config) (*Config, error) {
	cfg := *defaults

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Decode(f, &cfg); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return &cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
