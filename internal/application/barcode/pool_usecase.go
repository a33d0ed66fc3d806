package barcode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/ean13"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/pkg/config"
)

const (
	seqWidth = 8
	maxSeq   = 99999999
	// MaxBatch tope de códigos por llamada a AllocateBatch.
	MaxBatch = 1000
	// defaultLabel texto de etiqueta cuando el lote no trae notas.
	defaultLabel = "Código interno"
)

// PoolUseCase administra el pool de códigos EAN-13 internos: alta por lotes, asignación FIFO
// a variantes y liberación. Cada operación que toca código y variante corre en una sola transacción.
type PoolUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	cfg      config.BarcodeConfig
	labels   LabelPublisher
	audit    AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewPoolUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewPoolUseCase(
	txRunner TxRunner,
	repos repository.Repos,
	cfg config.BarcodeConfig,
	labels LabelPublisher,
	audit AuditRecorder,
	log zerolog.Logger,
) *PoolUseCase {
	return &PoolUseCase{
		txRunner: txRunner,
		repos:    repos,
		cfg:      cfg,
		labels:   labels,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// AllocateBatch reserva count números de secuencia y da de alta los códigos como FREE.
// La reserva del rango y la inserción forman una sola transacción.
func (uc *PoolUseCase) AllocateBatch(ctx context.Context, count int, notes string) ([]*entity.InternalBarcode, error) {
	if count <= 0 || count > MaxBatch {
		return nil, fmt.Errorf("%w: cantidad %d fuera de [1,%d]", domain.ErrInvalidInput, count, MaxBatch)
	}
	now := uc.now()
	var codes []*entity.InternalBarcode

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		start, err := repos.Sequences.ClaimRange(ctx, int64(count))
		if err != nil {
			return err
		}
		if start < 0 || start+int64(count)-1 > maxSeq {
			return domain.ErrSequenceExhausted
		}
		codes = make([]*entity.InternalBarcode, 0, count)
		for i := int64(0); i < int64(count); i++ {
			seq, err := ean13.ZeroPad(start+i, seqWidth)
			if err != nil {
				return err
			}
			code, err := ean13.ToEAN13(uc.cfg.InternalPrefix + seq)
			if err != nil {
				return err
			}
			codes = append(codes, &entity.InternalBarcode{
				EAN13:     code,
				Status:    entity.BarcodeFree,
				Notes:     notes,
				CreatedAt: now,
			})
		}
		return repos.Barcodes.InsertBatch(ctx, codes)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, entity.AuditRecord{
		Action: entity.AuditBarcodesAllocated,
		Fields: map[string]any{"count": count, "first": codes[0].EAN13, "last": codes[len(codes)-1].EAN13},
		At:     now,
	})

	description := notes
	if description == "" {
		description = defaultLabel
	}
	jobs := make([]entity.LabelJob, 0, len(codes))
	for _, c := range codes {
		jobs = append(jobs, entity.LabelJob{Description: description, EAN13: c.EAN13, Copies: 1})
	}
	uc.publish(ctx, jobs)
	return codes, nil
}

// Assign toma el código FREE más antiguo y lo asigna a la variante.
func (uc *PoolUseCase) Assign(ctx context.Context, variantID string) (*entity.InternalBarcode, error) {
	if variantID == "" {
		return nil, domain.ErrVariantNotFound
	}
	now := uc.now()
	var (
		code    *entity.InternalBarcode
		variant *entity.PackVariant
	)

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		variant, err = repos.Variants.GetByIDForUpdate(ctx, variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrVariantNotFound
		}
		if variant.HasAnyBarcode() {
			return domain.ErrAlreadyHasBarcode
		}
		code, err = repos.Barcodes.ClaimOldestFree(ctx)
		if err != nil {
			return err
		}
		if code == nil {
			return domain.ErrPoolExhausted
		}
		code.Status = entity.BarcodeAssigned
		code.VariantID = variant.ID
		code.AssignedAt = &now
		if err := repos.Barcodes.Update(ctx, code); err != nil {
			return err
		}
		return repos.Variants.SetBarcode(ctx, variant.ID, code.EAN13)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, entity.AuditRecord{
		Action: entity.AuditBarcodeAssigned,
		Fields: map[string]any{"ean13": code.EAN13, "variant_id": variant.ID},
		At:     now,
	})
	contentKg := variant.ContentKg
	uc.publish(ctx, []entity.LabelJob{{
		Description: variant.Name,
		EAN13:       code.EAN13,
		Copies:      1,
		ContentKg:   &contentKg,
	}})
	return code, nil
}

// Release libera un código. Si estaba asignado, primero limpia el código de la variante dueña.
// retire=true lo deja RETIRED y ya no vuelve al pool.
func (uc *PoolUseCase) Release(ctx context.Context, code string, retire bool) (*entity.InternalBarcode, error) {
	var released *entity.InternalBarcode
	var previousVariant string

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		released, err = repos.Barcodes.GetByEAN13ForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if released == nil {
			return domain.ErrNotFound
		}
		if released.Status == entity.BarcodeRetired {
			return fmt.Errorf("%w: el código %s está retirado", domain.ErrInvalidInput, code)
		}
		previousVariant = released.VariantID
		if released.Status == entity.BarcodeAssigned && released.VariantID != "" {
			variant, err := repos.Variants.GetByIDForUpdate(ctx, released.VariantID)
			if err != nil {
				return err
			}
			if variant != nil && variant.Barcode == released.EAN13 {
				if err := repos.Variants.SetBarcode(ctx, variant.ID, ""); err != nil {
					return err
				}
			}
		}
		released.Status = entity.BarcodeFree
		if retire {
			released.Status = entity.BarcodeRetired
		}
		released.VariantID = ""
		released.AssignedAt = nil
		return repos.Barcodes.Update(ctx, released)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, entity.AuditRecord{
		Action: entity.AuditBarcodeReleased,
		Fields: map[string]any{"ean13": released.EAN13, "variant_id": previousVariant, "status": string(released.Status)},
		At:     uc.now(),
	})
	return released, nil
}

// ListBarcodes lista el pool en orden de alta; status vacío trae todos.
func (uc *PoolUseCase) ListBarcodes(ctx context.Context, status entity.BarcodeStatus, limit, offset int) ([]*entity.InternalBarcode, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repos.Barcodes.List(ctx, status, limit, offset)
}

// publish envía etiquetas después del commit; un fallo se loguea y no afecta la operación.
func (uc *PoolUseCase) publish(ctx context.Context, jobs []entity.LabelJob) {
	if uc.labels == nil || len(jobs) == 0 {
		return
	}
	if err := uc.labels.Publish(ctx, jobs); err != nil {
		uc.log.Warn().Err(err).Int("jobs", len(jobs)).Msg("no se pudieron encolar etiquetas")
	}
}

func (uc *PoolUseCase) record(ctx context.Context, rec entity.AuditRecord) {
	if uc.audit != nil {
		uc.audit.Record(ctx, rec)
	}
}
