package loader

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/saft/audit"
)

// ConfigFile is the YAML configuration file of the validator.
//
//	continuousLines: true
//	deltaLine: 0.01
//	deltaTotalDoc: 0.01
//	taxTable: tax-table.xlsx
//	taxSheet: Taxas
//
// Unset fields keep their defaults.
type ConfigFile struct {
	ContinuousLines *bool            `yaml:"continuousLines"`
	DeltaLine       *decimal.Decimal `yaml:"deltaLine"`
	DeltaCurrency   *decimal.Decimal `yaml:"deltaCurrency"`
	DeltaTable      *decimal.Decimal `yaml:"deltaTable"`
	DeltaTotalDoc   *decimal.Decimal `yaml:"deltaTotalDoc"`

	// TaxTable is a workbook with tax table rows added to the master files.
	TaxTable string `yaml:"taxTable,omitempty"`
	TaxSheet string `yaml:"taxSheet,omitempty"`
}

// LoadConfig reads a configuration file.
func LoadConfig(filename string) (*ConfigFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return &cfg, nil
}

// Options renders the set fields as validator options.
func (c *ConfigFile) Options() map[string][]string {
	options := make(map[string][]string)
	if c.ContinuousLines != nil {
		options[audit.OptionContinuousLines] = []string{fmt.Sprint(*c.ContinuousLines)}
	}

	deltas := []struct {
		name  string
		value *decimal.Decimal
	}{
		{audit.OptionDeltaLine, c.DeltaLine},
		{audit.OptionDeltaCurrency, c.DeltaCurrency},
		{audit.OptionDeltaTable, c.DeltaTable},
		{audit.OptionDeltaTotalDoc, c.DeltaTotalDoc},
	}
	for _, d := range deltas {
		if d.value != nil {
			options[d.name] = []string{d.value.String()}
		}
	}

	return options
}

// Config converts the file into a validator configuration.
func (c *ConfigFile) Config() (*audit.Config, error) {
	return audit.ConfigFromOptions(c.Options())
}

// DefaultConfig renders the default configuration as YAML.
func DefaultConfig() ([]byte, error) {
	cfg := audit.NewConfig()
	continuous := cfg.ContinuousLines

	return yaml.Marshal(&ConfigFile{
		ContinuousLines: &continuous,
		DeltaLine:       &cfg.Tolerance.Line,
		DeltaCurrency:   &cfg.Tolerance.Currency,
		DeltaTable:      &cfg.Tolerance.Table,
		DeltaTotalDoc:   &cfg.Tolerance.TotalDoc,
	})
}
