package settlement

import "github.com/shopspring/decimal"

// Config carries the settlement ceilings. Values come from the
// infrastructure configuration layer; the services only see this struct.
type Config struct {
	// BillValueCeiling is the maximum currency value one sub-bill may carry.
	// A sale whose total exceeds it is partitioned by the value-bounded split.
	BillValueCeiling decimal.Decimal
	// BillVolumeCeilingML is the maximum physical volume one sub-bill may
	// carry. A shrinkage sale whose volume exceeds it is partitioned by the
	// volume-bounded split.
	BillVolumeCeilingML int64
}

// DefaultConfig returns the stock settlement ceilings
func DefaultConfig() Config {
	return Config{
		BillValueCeiling:    decimal.NewFromInt(250000),
		BillVolumeCeilingML: 50000,
	}
}
