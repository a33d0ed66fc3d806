package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var (
	_ repository.PackVariantRepository     = (*variantRepo)(nil)
	_ repository.BulkProductRepository     = (*productRepo)(nil)
	_ repository.InternalBarcodeRepository = (*barcodeRepo)(nil)
	_ repository.PluRepository             = (*pluRepo)(nil)
	_ repository.CostLedgerRepository      = (*ledgerRepo)(nil)
	_ repository.SequenceRepository        = (*sequenceRepo)(nil)
)

type variantRepo struct {
	s    *Store
	inTx bool
}

func (r *variantRepo) Create(_ context.Context, v *entity.PackVariant) error {
	defer r.s.guard(r.inTx)()
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if _, ok := r.s.variants[v.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.variants[v.ID] = copyVariant(v)
	return nil
}

func (r *variantRepo) GetByID(_ context.Context, id string) (*entity.PackVariant, error) {
	defer r.s.guard(r.inTx)()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	return copyVariant(v), nil
}

func (r *variantRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PackVariant, error) {
	return r.GetByID(ctx, id)
}

func (r *variantRepo) GetByCode(_ context.Context, code string) (*entity.PackVariant, error) {
	defer r.s.guard(r.inTx)()
	if code == "" {
		return nil, nil
	}
	for _, v := range r.s.variants {
		if v.Barcode == code || (v.FakeScale != nil && v.FakeScale.Code == code) {
			return copyVariant(v), nil
		}
	}
	return nil, nil
}

func (r *variantRepo) codeTaken(id, code string) bool {
	for _, other := range r.s.variants {
		if other.ID == id {
			continue
		}
		if other.Barcode == code || (other.FakeScale != nil && other.FakeScale.Code == code) {
			return true
		}
	}
	return false
}

func (r *variantRepo) SetBarcode(_ context.Context, id, code string) error {
	defer r.s.guard(r.inTx)()
	v, ok := r.s.variants[id]
	if !ok {
		return domain.ErrVariantNotFound
	}
	if code != "" && r.codeTaken(id, code) {
		return domain.ErrDuplicate
	}
	v.Barcode = code
	v.UpdatedAt = time.Now()
	return nil
}

func (r *variantRepo) SetFakeScale(_ context.Context, id string, code *entity.ScaleBarcode) error {
	defer r.s.guard(r.inTx)()
	v, ok := r.s.variants[id]
	if !ok {
		return domain.ErrVariantNotFound
	}
	if code == nil {
		v.FakeScale = nil
		return nil
	}
	if r.codeTaken(id, code.Code) {
		return domain.ErrDuplicate
	}
	cp := *code
	v.FakeScale = &cp
	v.UpdatedAt = time.Now()
	return nil
}

func (r *variantRepo) UpdateStock(_ context.Context, id string, stockPacks int64, avgPackCost decimal.Decimal) error {
	defer r.s.guard(r.inTx)()
	v, ok := r.s.variants[id]
	if !ok {
		return domain.ErrVariantNotFound
	}
	if stockPacks < 0 {
		return fmt.Errorf("%w: stock de packs negativo", domain.ErrInvalidInput)
	}
	v.StockPacks = stockPacks
	v.AvgPackCostARS = avgPackCost
	v.UpdatedAt = time.Now()
	return nil
}

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(_ context.Context, p *entity.BulkProduct) error {
	defer r.s.guard(r.inTx)()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.BulkProduct, error) {
	defer r.s.guard(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.BulkProduct, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stockKg decimal.Decimal) error {
	defer r.s.guard(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stockKg.IsNegative() {
		return fmt.Errorf("%w: stock a granel negativo", domain.ErrInvalidInput)
	}
	p.Stock = stockKg
	p.UpdatedAt = time.Now()
	return nil
}

type barcodeRepo struct {
	s    *Store
	inTx bool
}

func (r *barcodeRepo) InsertBatch(_ context.Context, codes []*entity.InternalBarcode) error {
	defer r.s.guard(r.inTx)()
	for _, c := range codes {
		if _, ok := r.s.barcodes[c.EAN13]; ok {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, c.EAN13)
		}
	}
	for _, c := range codes {
		r.s.barcodeSeq++
		c.Seq = r.s.barcodeSeq
		r.s.barcodes[c.EAN13] = copyBarcode(c)
	}
	return nil
}

func (r *barcodeRepo) GetByEAN13(_ context.Context, code string) (*entity.InternalBarcode, error) {
	defer r.s.guard(r.inTx)()
	b, ok := r.s.barcodes[code]
	if !ok {
		return nil, nil
	}
	return copyBarcode(b), nil
}

func (r *barcodeRepo) GetByEAN13ForUpdate(ctx context.Context, code string) (*entity.InternalBarcode, error) {
	return r.GetByEAN13(ctx, code)
}

func (r *barcodeRepo) ClaimOldestFree(_ context.Context) (*entity.InternalBarcode, error) {
	defer r.s.guard(r.inTx)()
	var oldest *entity.InternalBarcode
	for _, b := range r.s.barcodes {
		if b.Status != entity.BarcodeFree {
			continue
		}
		if oldest == nil || b.Seq < oldest.Seq {
			oldest = b
		}
	}
	if oldest == nil {
		return nil, nil
	}
	return copyBarcode(oldest), nil
}

func (r *barcodeRepo) Update(_ context.Context, code *entity.InternalBarcode) error {
	defer r.s.guard(r.inTx)()
	b, ok := r.s.barcodes[code.EAN13]
	if !ok {
		return domain.ErrNotFound
	}
	if code.Status == entity.BarcodeAssigned {
		for _, other := range r.s.barcodes {
			if other.EAN13 != code.EAN13 && other.Status == entity.BarcodeAssigned && other.VariantID == code.VariantID {
				return fmt.Errorf("%w: la variante ya tiene un código asignado", domain.ErrDuplicate)
			}
		}
	}
	b.Status = code.Status
	b.VariantID = code.VariantID
	b.AssignedAt = nil
	if code.AssignedAt != nil {
		at := *code.AssignedAt
		b.AssignedAt = &at
	}
	return nil
}

func (r *barcodeRepo) List(_ context.Context, status entity.BarcodeStatus, limit, offset int) ([]*entity.InternalBarcode, error) {
	defer r.s.guard(r.inTx)()
	list := make([]*entity.InternalBarcode, 0, len(r.s.barcodes))
	for _, b := range r.s.barcodes {
		if status != "" && b.Status != status {
			continue
		}
		list = append(list, copyBarcode(b))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	if offset >= len(list) {
		return []*entity.InternalBarcode{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type pluRepo struct {
	s    *Store
	inTx bool
}

func (r *pluRepo) Create(_ context.Context, rec *entity.PluRecord) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.plu[rec.PLU]; ok {
		return domain.ErrDuplicate
	}
	cp := *rec
	r.s.plu[rec.PLU] = &cp
	return nil
}

func (r *pluRepo) GetByPLU(_ context.Context, plu string) (*entity.PluRecord, error) {
	defer r.s.guard(r.inTx)()
	rec, ok := r.s.plu[plu]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

type ledgerRepo struct {
	s    *Store
	inTx bool
}

func (r *ledgerRepo) Create(_ context.Context, e *entity.CostLedgerEntry) error {
	defer r.s.guard(r.inTx)()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	cp := *e
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *ledgerRepo) ListByRef(_ context.Context, refTable, refID string) ([]*entity.CostLedgerEntry, error) {
	defer r.s.guard(r.inTx)()
	var list []*entity.CostLedgerEntry
	for _, e := range r.s.ledger {
		if e.RefTable == refTable && e.RefID == refID {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}

type sequenceRepo struct {
	s    *Store
	inTx bool
}

func (r *sequenceRepo) ClaimRange(_ context.Context, count int64) (int64, error) {
	defer r.s.guard(r.inTx)()
	if count <= 0 {
		return 0, domain.ErrInvalidInput
	}
	start := r.s.nextSequence
	r.s.nextSequence += count
	return start, nil
}
