package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Share link settings
	Share ShareConfig `yaml:"share"`

	// Company identity printed on invoices
	Company CompanyConfig `yaml:"company"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // Path to the JSON invoice slot
}

type InvoiceConfig struct {
	IDPrefix  string `yaml:"id_prefix"`  // Invoice id prefix (e.g., "INV")
	OutputDir string `yaml:"output_dir"` // Directory for printed documents and QR images
}

type ShareConfig struct {
	BaseURL string `yaml:"base_url"` // Site root encoded into public links and QR codes
}

type CompanyConfig struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Website string `yaml:"website"`
	Address string `yaml:"address"`
}

// DefaultConfigPath returns ~/.config/agrione/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "agrione", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "agrione", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(homeDir, ".config", "agrione", "invoices.json"),
		},
		Invoice: InvoiceConfig{
			IDPrefix:  "INV",
			OutputDir: filepath.Join(homeDir, ".config", "agrione", "printed"),
		},
		Share: ShareConfig{
			BaseURL: "https://www.agri-one.com",
		},
		Company: CompanyConfig{
			Name:    "Agri One",
			Phone:   "",
			Website: "www.agri-one.com",
			Address: "",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (storage, output)
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Storage.Path), 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.Invoice.OutputDir, 0755)
}
