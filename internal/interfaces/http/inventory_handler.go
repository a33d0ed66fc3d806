package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/application/inventory"
	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// InventoryHandler ventas de packs (resolve/commit) y envasado (protegido).
type InventoryHandler struct {
	consumption *inventory.ConsumptionUseCase
	packaging   *inventory.PackagingUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(consumption *inventory.ConsumptionUseCase, packaging *inventory.PackagingUseCase) *InventoryHandler {
	return &InventoryHandler{consumption: consumption, packaging: packaging}
}

// ResolvePlan godoc
// @Summary      Calcular de dónde sale una venta de packs
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolvePlanRequest  true  "variant_id, qty_packs"
// @Success      200   {object}  dto.PlanDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/plans [post]
func (h *InventoryHandler) ResolvePlan(c *fiber.Ctx) error {
	var in dto.ResolvePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	plan, err := h.consumption.Resolve(c.Context(), in.VariantID, in.QtyPacks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlanDTO(plan))
}

// CommitPlan godoc
// @Summary      Confirmar un plan de consumo
// @Description  Revalida el stock; si cambió desde el cálculo responde 409 STALE_PLAN.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitPlanRequest  true  "sale_ref y plan devuelto por /plans"
// @Success      201   {object}  dto.CommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/commit [post]
func (h *InventoryHandler) CommitPlan(c *fiber.Ctx) error {
	var in dto.CommitPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.consumption.Commit(c.Context(), in.SaleRef, fromPlanDTO(in.Plan))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommitResponse(res))
}

// Consume godoc
// @Summary      Calcular y confirmar una venta en un paso
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "sale_ref, variant_id, qty_packs"
// @Success      201   {object}  dto.CommitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.consumption.Consume(c.Context(), in.SaleRef, in.VariantID, in.QtyPacks)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommitResponse(res))
}

// Package godoc
// @Summary      Registrar un envasado
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackagingRequest  true  "ref, variant_id, packs, waste_kg"
// @Success      201   {object}  dto.PackagingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/packaging [post]
func (h *InventoryHandler) Package(c *fiber.Ctx) error {
	var in dto.PackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.packaging.Package(c.Context(), inventory.PackageInput{
		Ref: in.Ref, VariantID: in.VariantID, Packs: in.Packs, WasteKg: in.WasteKg,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PackagingResponse{
		Ref:            res.Ref,
		StockPacks:     res.StockPacks,
		AvgPackCostARS: res.AvgPackCostARS,
		BulkStockKg:    res.BulkStockKg,
		Entries:        toLedgerResponses(res.Entries),
	})
}

// Ledger godoc
// @Summary      Asientos del libro de costos de una venta o envasado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ref_table  query  string  true  "sales | packaging_runs"
// @Param        ref_id     query  string  true  "Referencia"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	entries, err := h.consumption.ListLedger(c.Context(), c.Query("ref_table"), c.Query("ref_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerResponses(entries))
}

func toPlanDTO(p entity.ConsumptionPlan) dto.PlanDTO {
	return dto.PlanDTO{
		VariantID: p.VariantID,
		ProductID: p.ProductID,
		QtyPacks:  p.QtyPacks,
		ContentKg: p.ContentKg,
		Kind:      string(p.Kind),
		PackUnits: p.PackUnits,
		BulkKg:    p.BulkKg,
	}
}

func fromPlanDTO(p dto.PlanDTO) entity.ConsumptionPlan {
	return entity.ConsumptionPlan{
		VariantID: p.VariantID,
		ProductID: p.ProductID,
		QtyPacks:  p.QtyPacks,
		ContentKg: p.ContentKg,
		Kind:      entity.PlanKind(p.Kind),
		PackUnits: p.PackUnits,
		BulkKg:    p.BulkKg,
	}
}

func toCommitResponse(res *inventory.CommitResult) dto.CommitResponse {
	return dto.CommitResponse{
		SaleRef:  res.SaleRef,
		Plan:     toPlanDTO(res.Plan),
		Strategy: res.Strategy,
		Entries:  toLedgerResponses(res.Entries),
	}
}

func toLedgerResponses(entries []*entity.CostLedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:           e.ID,
			ProductID:    e.ProductID,
			VariantID:    e.VariantID,
			Type:         e.Type,
			RefTable:     e.RefTable,
			RefID:        e.RefID,
			Qty:          e.Qty,
			UnitCostARS:  e.UnitCostARS,
			TotalCostARS: e.TotalCostARS,
			Notes:        e.Notes,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}
