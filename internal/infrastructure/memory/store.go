// Package memory implementa el catálogo en memoria, con las mismas reglas que la versión
// PostgreSQL. Run serializa las transacciones con un mutex y deshace los cambios si fn falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// Store catálogo en memoria.
type Store struct {
	mu           sync.Mutex
	variants     map[string]*entity.PackVariant
	products     map[string]*entity.BulkProduct
	barcodes     map[string]*entity.InternalBarcode
	barcodeSeq   int64
	plu          map[string]*entity.PluRecord
	ledger       []*entity.CostLedgerEntry
	nextSequence int64
}

// New crea un store vacío; firstSequence es el primer número de secuencia de códigos internos.
func New(firstSequence int64) *Store {
	return &Store{
		variants:     make(map[string]*entity.PackVariant),
		products:     make(map[string]*entity.BulkProduct),
		barcodes:     make(map[string]*entity.InternalBarcode),
		plu:          make(map[string]*entity.PluRecord),
		nextSequence: firstSequence,
	}
}

// Run ejecuta fn con repos atados a una "transacción": exclusión mutua y rollback si fn devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(s.repos(true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repos devuelve repos fuera de transacción; cada llamada toma el lock por separado.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// NextSequence valor actual del contador (tests).
func (s *Store) NextSequence() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSequence
}

func (s *Store) repos(inTx bool) repository.Repos {
	return repository.Repos{
		Variants:  &variantRepo{s: s, inTx: inTx},
		Products:  &productRepo{s: s, inTx: inTx},
		Barcodes:  &barcodeRepo{s: s, inTx: inTx},
		Plu:       &pluRepo{s: s, inTx: inTx},
		Ledger:    &ledgerRepo{s: s, inTx: inTx},
		Sequences: &sequenceRepo{s: s, inTx: inTx},
	}
}

// guard toma el lock salvo que ya lo tenga la transacción en curso.
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	variants     map[string]*entity.PackVariant
	products     map[string]*entity.BulkProduct
	barcodes     map[string]*entity.InternalBarcode
	barcodeSeq   int64
	plu          map[string]*entity.PluRecord
	ledgerLen    int
	nextSequence int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		variants:     make(map[string]*entity.PackVariant, len(s.variants)),
		products:     make(map[string]*entity.BulkProduct, len(s.products)),
		barcodes:     make(map[string]*entity.InternalBarcode, len(s.barcodes)),
		barcodeSeq:   s.barcodeSeq,
		plu:          make(map[string]*entity.PluRecord, len(s.plu)),
		ledgerLen:    len(s.ledger),
		nextSequence: s.nextSequence,
	}
	for k, v := range s.variants {
		snap.variants[k] = copyVariant(v)
	}
	for k, p := range s.products {
		cp := *p
		snap.products[k] = &cp
	}
	for k, b := range s.barcodes {
		snap.barcodes[k] = copyBarcode(b)
	}
	for k, r := range s.plu {
		cp := *r
		snap.plu[k] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.variants = snap.variants
	s.products = snap.products
	s.barcodes = snap.barcodes
	s.barcodeSeq = snap.barcodeSeq
	s.plu = snap.plu
	s.ledger = s.ledger[:snap.ledgerLen]
	s.nextSequence = snap.nextSequence
}

func copyVariant(v *entity.PackVariant) *entity.PackVariant {
	cp := *v
	if v.FakeScale != nil {
		fs := *v.FakeScale
		cp.FakeScale = &fs
	}
	if v.FixedPrice != nil {
		fp := *v.FixedPrice
		cp.FixedPrice = &fp
	}
	return &cp
}

func copyBarcode(b *entity.InternalBarcode) *entity.InternalBarcode {
	cp := *b
	if b.AssignedAt != nil {
		at := *b.AssignedAt
		cp.AssignedAt = &at
	}
	return &cp
}
