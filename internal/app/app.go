package app

import (
	"fmt"

	"github.com/andy/agrione/internal/config"
	"github.com/andy/agrione/internal/service"
	"github.com/andy/agrione/internal/share"
	"github.com/andy/agrione/internal/store"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Ledger *store.Ledger
	Linker share.Linker

	// Services
	InvoiceService service.InvoiceService
}

// New creates a new App instance, initializing all dependencies:
// 1. Loading config
// 2. Opening the invoice slot and ledger
// 3. Creating services
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Open the ledger over its JSON slot. A missing or corrupt slot
	// starts an empty ledger rather than failing startup.
	ledger := store.Open(store.NewFileSlot(cfg.Storage.Path))

	invoiceService := service.NewInvoiceService(ledger, cfg.Invoice.IDPrefix)

	return &App{
		Config:         cfg,
		Ledger:         ledger,
		Linker:         share.Linker{BaseURL: cfg.Share.BaseURL},
		InvoiceService: invoiceService,
	}, nil
}

// Company returns the seller identity block for printed documents.
func (a *App) Company() share.Company {
	return share.Company{
		Name:    a.Config.Company.Name,
		Phone:   a.Config.Company.Phone,
		Website: a.Config.Company.Website,
		Address: a.Config.Company.Address,
	}
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
