package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/application/barcode"
	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/application/inventory"
	"github.com/jhoicas/granel-api/internal/application/usecase"
	"github.com/jhoicas/granel-api/internal/infrastructure/audit"
	"github.com/jhoicas/granel-api/internal/infrastructure/labels"
	"github.com/jhoicas/granel-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/granel-api/internal/interfaces/http"
	"github.com/jhoicas/granel-api/pkg/config"
	pkgjwt "github.com/jhoicas/granel-api/pkg/jwt"
	"github.com/jhoicas/granel-api/pkg/logger"
)

type testServer struct {
	app    *fiber.App
	labels *labels.Memory
	audit  *audit.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New(1)
	repos := store.Repos()
	cfg := config.BarcodeConfig{
		DefaultScheme:   config.SchemeWeightEmbedded,
		DefaultPrefix:   20,
		InternalPrefix:  "0400",
		PLUPriceDivisor: 1000,
	}
	lab := &labels.Memory{}
	aud := audit.NewMemory()
	log := logger.Nop().Component("test")

	plu := barcode.NewPluUseCase(repos, cfg)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:     usecase.NewCatalogUseCase(repos),
		Pool:        barcode.NewPoolUseCase(store, repos, cfg, lab, aud, log),
		Scale:       barcode.NewScaleUseCase(store, repos, cfg),
		Plu:         plu,
		Scan:        barcode.NewScanUseCase(repos, plu),
		Consumption: inventory.NewConsumptionUseCase(store, repos, aud, log),
		Packaging:   inventory.NewPackagingUseCase(store, aud),
		JWTSecret:   testJWTSecret,
	})
	return &testServer{app: app, labels: lab, audit: aud}
}

// call hace la petición con el rol dado y decodifica la respuesta en out si no es nil.
func (s *testServer) call(t *testing.T, role, method, path string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// seedVariant crea "Harina 000" con 10 kg a granel y una variante de 0,5 kg con 2 packs.
func (s *testServer) seedVariant(t *testing.T) dto.VariantResponse {
	t.Helper()
	var product dto.ProductResponse
	status := s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/products", map[string]any{
		"name": "Harina 000", "stock_kg": "10", "cost_ars": "800", "price_per_kg": "1200",
	}, &product)
	require.Equal(t, http.StatusCreated, status)

	var variant dto.VariantResponse
	status = s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/variants", map[string]any{
		"product_id": product.ID, "name": "Harina 000", "content_kg": "0.5", "stock_packs": 2,
	}, &variant)
	require.Equal(t, http.StatusCreated, status)
	return variant
}

func TestRouter_HealthSinToken(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.call(t, "", http.MethodGet, "/api/health", nil, nil))
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	s := newTestServer(t)
	var body dto.ErrorResponse
	status := s.call(t, "", http.MethodGet, "/api/barcodes", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

func TestRouter_CajeroNoDaDeAltaCodigos(t *testing.T) {
	s := newTestServer(t)
	var body dto.ErrorResponse
	status := s.call(t, pkgjwt.RoleCajero, http.MethodPost, "/api/barcodes/batch", map[string]any{"count": 2}, &body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)
}

func TestRouter_AltaAsignacionYEscaneo(t *testing.T) {
	s := newTestServer(t)
	variant := s.seedVariant(t)

	var batch []dto.BarcodeResponse
	status := s.call(t, pkgjwt.RoleAdmin, http.MethodPost, "/api/barcodes/batch", map[string]any{"count": 3}, &batch)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, batch, 3)
	assert.Equal(t, "040000000001", batch[0].EAN13[:12])

	var assigned dto.BarcodeResponse
	status = s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/barcodes/assign", map[string]any{"variant_id": variant.ID}, &assigned)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, batch[0].EAN13, assigned.EAN13)
	assert.Equal(t, "ASSIGNED", assigned.Status)

	var again dto.ErrorResponse
	status = s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/barcodes/assign", map[string]any{"variant_id": variant.ID}, &again)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_HAS_BARCODE", again.Code)

	var scan dto.ScanResponse
	status = s.call(t, pkgjwt.RoleCajero, http.MethodGet, "/api/scan/"+assigned.EAN13, nil, &scan)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "VARIANT", scan.Kind)
	require.NotNil(t, scan.Variant)
	assert.Equal(t, variant.ID, scan.Variant.ID)
	require.NotNil(t, scan.UnitPrice)
	assert.Equal(t, "600", scan.UnitPrice.String())

	// alta (3) + asignación (1)
	assert.Len(t, s.labels.Jobs(), 4)
}

func TestRouter_EscaneoMalFormado(t *testing.T) {
	s := newTestServer(t)
	var body dto.ErrorResponse
	status := s.call(t, pkgjwt.RoleCajero, http.MethodGet, "/api/scan/123", nil, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MALFORMED", body.Code)
}

func TestRouter_VentaMixtaYLibro(t *testing.T) {
	s := newTestServer(t)
	variant := s.seedVariant(t)

	var plan dto.PlanDTO
	status := s.call(t, pkgjwt.RoleCajero, http.MethodPost, "/api/inventory/plans", map[string]any{
		"variant_id": variant.ID, "qty_packs": 3,
	}, &plan)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "MIXED", plan.Kind)
	assert.Equal(t, int64(2), plan.PackUnits)
	assert.Equal(t, "0.5", plan.BulkKg.String())

	var committed dto.CommitResponse
	status = s.call(t, pkgjwt.RoleCajero, http.MethodPost, "/api/inventory/commit", map[string]any{
		"sale_ref": "V-0001", "plan": plan,
	}, &committed)
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, committed.Entries, 2)

	// el mismo plan ya no vale: los packs se agotaron
	var stale dto.ErrorResponse
	status = s.call(t, pkgjwt.RoleCajero, http.MethodPost, "/api/inventory/commit", map[string]any{
		"sale_ref": "V-0002", "plan": plan,
	}, &stale)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STALE_PLAN", stale.Code)

	var ledger []dto.LedgerEntryResponse
	status = s.call(t, pkgjwt.RoleEncargado, http.MethodGet, "/api/inventory/ledger?ref_table=sales&ref_id=V-0001", nil, &ledger)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, ledger, 2)

	var product dto.ProductResponse
	status = s.call(t, pkgjwt.RoleCajero, http.MethodGet, "/api/products/"+variant.ProductID, nil, &product)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "9.5", product.StockKg.String())
}

func TestRouter_VentaSinStock(t *testing.T) {
	s := newTestServer(t)
	variant := s.seedVariant(t)

	var body dto.ErrorResponse
	status := s.call(t, pkgjwt.RoleCajero, http.MethodPost, "/api/inventory/consume", map[string]any{
		"sale_ref": "V-9", "variant_id": variant.ID, "qty_packs": 100,
	}, &body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

func TestRouter_CodigoDeBalanza(t *testing.T) {
	s := newTestServer(t)
	variant := s.seedVariant(t)

	var code dto.ScaleBarcodeResponse
	status := s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/variants/"+variant.ID+"/scale-barcode", nil, &code)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "WEIGHT_EMBEDDED", code.Scheme)
	assert.Equal(t, 20, code.Prefix)

	var decoded dto.DecodedScaleResponse
	status = s.call(t, pkgjwt.RoleCajero, http.MethodGet, "/api/variants/"+variant.ID+"/scale-barcode", nil, &decoded)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, code.Code, decoded.Code)
	require.NotNil(t, decoded.WeightKg)
	assert.Equal(t, "0.5", decoded.WeightKg.String())
}

func TestRouter_VarianteInexistente(t *testing.T) {
	s := newTestServer(t)
	var body dto.ErrorResponse
	status := s.call(t, pkgjwt.RoleCajero, http.MethodGet, "/api/variants/no-existe", nil, &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "VARIANT_NOT_FOUND", body.Code)
}

func TestRouter_ListadoFiltraYLimitaPagina(t *testing.T) {
	s := newTestServer(t)
	variant := s.seedVariant(t)
	require.Equal(t, http.StatusCreated, s.call(t, pkgjwt.RoleAdmin, http.MethodPost, "/api/barcodes/batch", map[string]any{"count": 3}, nil))
	require.Equal(t, http.StatusCreated, s.call(t, pkgjwt.RoleEncargado, http.MethodPost, "/api/barcodes/assign", map[string]any{"variant_id": variant.ID}, nil))

	var list dto.BarcodeListResponse
	status := s.call(t, pkgjwt.RoleEncargado, http.MethodGet, "/api/barcodes?status=FREE&limit=500", nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, dto.MaxPageLimit, list.Page.Limit)
	assert.Equal(t, 2, list.Page.Count)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "FREE", list.Items[0].Status)

	var bad dto.ErrorResponse
	status = s.call(t, pkgjwt.RoleEncargado, http.MethodGet, "/api/barcodes?status=PERDIDO", nil, &bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", bad.Code)
}
