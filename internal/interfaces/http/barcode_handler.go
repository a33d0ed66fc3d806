package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/granel-api/internal/application/barcode"
	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/application/usecase"
	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/scalecode"
)

// BarcodeHandler pool de códigos internos y códigos de balanza de variantes (protegido).
type BarcodeHandler struct {
	pool  *barcode.PoolUseCase
	scale *barcode.ScaleUseCase
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(pool *barcode.PoolUseCase, scale *barcode.ScaleUseCase) *BarcodeHandler {
	return &BarcodeHandler{pool: pool, scale: scale}
}

// Allocate godoc
// @Summary      Dar de alta un lote de códigos internos
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateBarcodesRequest  true  "count (1..1000), notes"
// @Success      201   {array}   dto.BarcodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/barcodes/batch [post]
func (h *BarcodeHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateBarcodesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	codes, err := h.pool.AllocateBatch(c.Context(), in.Count, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BarcodeResponse, 0, len(codes))
	for _, b := range codes {
		out = append(out, toBarcodeResponse(b))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el pool de códigos internos
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "FREE | ASSIGNED | RETIRED"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.BarcodeListResponse
// @Router       /api/barcodes [get]
func (h *BarcodeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.Normalize()
	list, err := h.pool.ListBarcodes(c.Context(), entity.BarcodeStatus(page.Status), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.BarcodeResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBarcodeResponse(b))
	}
	return c.JSON(dto.BarcodeListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)}})
}

// Assign godoc
// @Summary      Asignar el código libre más antiguo a una variante
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignBarcodeRequest  true  "variant_id"
// @Success      201   {object}  dto.BarcodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/barcodes/assign [post]
func (h *BarcodeHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignBarcodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	code, err := h.pool.Assign(c.Context(), in.VariantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBarcodeResponse(code))
}

// Release godoc
// @Summary      Liberar o retirar un código interno
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ean13  path  string                     true  "Código EAN-13"
// @Param        body   body  dto.ReleaseBarcodeRequest  false "retire"
// @Success      200    {object}  dto.BarcodeResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/barcodes/{ean13}/release [post]
func (h *BarcodeHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseBarcodeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	code, err := h.pool.Release(c.Context(), c.Params("ean13"), in.Retire)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBarcodeResponse(code))
}

// GenerateScale godoc
// @Summary      Generar el código de balanza de una variante
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true   "ID de la variante"
// @Param        body  body  dto.GenerateScaleBarcodeRequest  false  "scheme, prefix"
// @Success      201   {object}  dto.ScaleBarcodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/scale-barcode [post]
func (h *BarcodeHandler) GenerateScale(c *fiber.Ctx) error {
	var in dto.GenerateScaleBarcodeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	code, err := h.scale.GenerateScaleBarcode(c.Context(), barcode.GenerateScaleInput{
		VariantID: c.Params("id"),
		Scheme:    entity.ScaleScheme(in.Scheme),
		Prefix:    in.Prefix,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ScaleBarcodeResponse{Code: code.Code, Scheme: string(code.Scheme), Prefix: code.Prefix})
}

// DecodeScale godoc
// @Summary      Leer el código de balanza guardado de una variante
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la variante"
// @Success      200  {object}  dto.DecodedScaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/scale-barcode [get]
func (h *BarcodeHandler) DecodeScale(c *fiber.Ctx) error {
	decoded, err := h.scale.DecodeScaleBarcode(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDecodedResponse(decoded))
}

// PluHandler tabla PLU y escaneo en caja (protegido).
type PluHandler struct {
	plu  *barcode.PluUseCase
	scan *barcode.ScanUseCase
}

// NewPluHandler construye el handler.
func NewPluHandler(plu *barcode.PluUseCase, scan *barcode.ScanUseCase) *PluHandler {
	return &PluHandler{plu: plu, scan: scan}
}

// Create godoc
// @Summary      Registrar una clave PLU
// @Tags         plu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePluRequest  true  "plu (5 dígitos), product_id, encoding"
// @Success      201   {object}  dto.PluResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plu [post]
func (h *PluHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePluRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.plu.CreatePluRecord(c.Context(), in.PLU, in.ProductID, entity.ScaleScheme(in.Encoding))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PluResponse{
		PLU: rec.PLU, ProductID: rec.ProductID, Encoding: string(rec.Encoding), CreatedAt: rec.CreatedAt,
	})
}

// Parse godoc
// @Summary      Interpretar un código como PLU indirecto
// @Tags         plu
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de 13 dígitos"
// @Success      200   {object}  dto.PluParseResponse
// @Router       /api/plu/parse/{code} [get]
func (h *PluHandler) Parse(c *fiber.Ctx) error {
	res, err := h.plu.Parse(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPluParseResponse(res))
}

// Encode godoc
// @Summary      Armar un código PLU indirecto
// @Tags         plu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EncodePluRequest  true  "plu, sub_family, weight_kg o price_ars"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plu/encode [post]
func (h *PluHandler) Encode(c *fiber.Ctx) error {
	var in dto.EncodePluRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var sub byte
	if len(in.SubFamily) == 1 {
		sub = in.SubFamily[0]
	} else if in.SubFamily != "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	code, err := h.plu.Encode(c.Context(), barcode.EncodePluInput{
		PLU: in.PLU, SubFamily: sub, WeightKg: in.WeightKg, PriceARS: in.PriceARS,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ean13": code})
}

// Scan godoc
// @Summary      Resolver un código escaneado en caja
// @Tags         plu
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código EAN-13"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scan/{code} [get]
func (h *PluHandler) Scan(c *fiber.Ctx) error {
	res, err := h.scan.Scan(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ScanResponse{Kind: string(res.Kind), Code: res.Code, UnitPrice: res.UnitPrice}
	if res.Product != nil {
		out.ProductID = res.Product.ID
	}
	if res.Variant != nil {
		out.Variant = usecase.ToVariantResponse(res.Variant)
	}
	if res.Scale != nil {
		out.Scale = toDecodedResponse(res.Scale)
	}
	if res.Plu != nil {
		out.Plu = toPluParseResponse(res.Plu)
	}
	return c.JSON(out)
}

func toBarcodeResponse(b *entity.InternalBarcode) dto.BarcodeResponse {
	return dto.BarcodeResponse{
		EAN13:      b.EAN13,
		Seq:        b.Seq,
		Status:     string(b.Status),
		VariantID:  b.VariantID,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		AssignedAt: b.AssignedAt,
	}
}

func toDecodedResponse(d *scalecode.Decoded) *dto.DecodedScaleResponse {
	out := &dto.DecodedScaleResponse{Code: d.Code, Scheme: string(d.Scheme), Prefix: d.Prefix, Value: d.Value}
	if d.Scheme == entity.SchemeWeightEmbedded {
		w := d.WeightKg
		out.WeightKg = &w
	} else {
		p := d.PriceARS
		out.PriceARS = &p
	}
	return out
}

func toPluParseResponse(r *barcode.PluResult) *dto.PluParseResponse {
	out := &dto.PluParseResponse{Status: string(r.Status), PLU: r.PLU, Value: r.Value}
	if r.Record == nil {
		return out
	}
	out.ProductID = r.Record.ProductID
	out.Encoding = string(r.Record.Encoding)
	w := r.WeightKg
	out.WeightKg = &w
	if r.Record.Encoding == entity.SchemePriceEmbedded {
		p := r.PriceARS
		out.PriceARS = &p
	}
	return out
}
