package assets

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the ledger constants.
type Config struct {
	// AssetDeposit is bonded by the creator of an asset.
	AssetDeposit DepositBalance `env:"ASSETS_ASSET_DEPOSIT" envDefault:"100"`
	// MetadataDepositBase is bonded for any metadata.
	MetadataDepositBase DepositBalance `env:"ASSETS_METADATA_DEPOSIT_BASE" envDefault:"10"`
	// MetadataDepositPerByte is bonded per byte of name and symbol.
	MetadataDepositPerByte DepositBalance `env:"ASSETS_METADATA_DEPOSIT_PER_BYTE" envDefault:"1"`
	// ApprovalDeposit is bonded by the owner for each approval record.
	ApprovalDeposit DepositBalance `env:"ASSETS_APPROVAL_DEPOSIT" envDefault:"1"`
	// StringLimit caps the length of the metadata name and symbol.
	StringLimit int `env:"ASSETS_STRING_LIMIT" envDefault:"50"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		AssetDeposit:           100,
		MetadataDepositBase:    10,
		MetadataDepositPerByte: 1,
		ApprovalDeposit:        1,
		StringLimit:            50,
	}
}

// ParseConfig loads the configuration from environment variables, using the
// defaults for the unset ones.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StringLimit <= 0 {
		return Config{}, fmt.Errorf("invalid string limit %d", cfg.StringLimit)
	}
	return cfg, nil
}

func (c Config) metadataDeposit(name, symbol string) DepositBalance {
	n := DepositBalance(len(name) + len(symbol))
	return c.MetadataDepositPerByte.saturatingMul(n).saturatingAdd(c.MetadataDepositBase)
}
