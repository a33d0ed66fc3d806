package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Variants  PackVariantRepository
	Products  BulkProductRepository
	Barcodes  InternalBarcodeRepository
	Plu       PluRepository
	Ledger    CostLedgerRepository
	Sequences SequenceRepository
}
