package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func variant(mode entity.ConsumeMode, stockPacks int64, contentKg string) *entity.PackVariant {
	return &entity.PackVariant{ID: "v1", ProductID: "p1", ContentKg: d(contentKg), StockPacks: stockPacks, ConsumeMode: mode}
}

func bulk(stockKg string) *entity.BulkProduct {
	return &entity.BulkProduct{ID: "p1", Stock: d(stockKg), CostARS: d("1000"), PricePerKg: d("1800")}
}

func TestResolve_SoloPacksArmados(t *testing.T) {
	plan, err := inventory.Resolve(variant(entity.ConsumeMixed, 10, "0.5"), bulk("0"), 4)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPackOnly, plan.Kind)
	assert.Equal(t, int64(4), plan.PackUnits)
	assert.True(t, plan.BulkKg.IsZero())
}

func TestResolve_MixtoConFaltante(t *testing.T) {
	plan, err := inventory.Resolve(variant(entity.ConsumeMixed, 2, "0.5"), bulk("10"), 5)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanMixed, plan.Kind)
	assert.Equal(t, int64(2), plan.PackUnits)
	assert.True(t, plan.BulkKg.Equal(d("1.5")), "bulkKg=%s", plan.BulkKg)
	assert.True(t, plan.PhysicalKg().Equal(plan.NeededKg()))
}

func TestResolve_MixtoInsuficiente(t *testing.T) {
	_, err := inventory.Resolve(variant(entity.ConsumeMixed, 2, "0.5"), bulk("1"), 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestResolve_ModoVacioEsMixto(t *testing.T) {
	plan, err := inventory.Resolve(variant("", 0, "0.25"), bulk("1"), 4)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanMixed, plan.Kind)
	assert.Equal(t, int64(0), plan.PackUnits)
	assert.True(t, plan.BulkKg.Equal(d("1")))
}

func TestResolve_SoloPack(t *testing.T) {
	_, err := inventory.Resolve(variant(entity.ConsumeSoloPack, 3, "0.5"), bulk("100"), 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientPackStock, "no debe caer al granel")

	plan, err := inventory.Resolve(variant(entity.ConsumeSoloPack, 4, "0.5"), bulk("0"), 4)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPackOnly, plan.Kind)
}

func TestResolve_SoloGranel(t *testing.T) {
	plan, err := inventory.Resolve(variant(entity.ConsumeSoloGranel, 50, "0.5"), bulk("2"), 4)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanBulkOnly, plan.Kind)
	assert.Equal(t, int64(0), plan.PackUnits)
	assert.True(t, plan.BulkKg.Equal(d("2")))

	_, err = inventory.Resolve(variant(entity.ConsumeSoloGranel, 50, "0.5"), bulk("1.99"), 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientBulkStock)
}

func TestResolve_EntradasInvalidas(t *testing.T) {
	_, err := inventory.Resolve(variant(entity.ConsumeMixed, 1, "0.5"), bulk("1"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Resolve(variant(entity.ConsumeMixed, 1, "0"), bulk("1"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Resolve(nil, bulk("1"), 1)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestCheckStillValid_DetectaConsumoConcurrente(t *testing.T) {
	v := variant(entity.ConsumeMixed, 2, "0.5")
	p := bulk("10")
	plan, err := inventory.Resolve(v, p, 5)
	require.NoError(t, err)
	require.NoError(t, inventory.CheckStillValid(plan, v, p))

	v.StockPacks = 1
	assert.ErrorIs(t, inventory.CheckStillValid(plan, v, p), domain.ErrStalePlan)

	v.StockPacks = 2
	p.Stock = d("1.4")
	assert.ErrorIs(t, inventory.CheckStillValid(plan, v, p), domain.ErrStalePlan)
}

func TestCheckStillValid_RespetaModoDeConsumo(t *testing.T) {
	v := variant(entity.ConsumeSoloPack, 5, "0.5")
	p := bulk("10")
	plan, err := inventory.Resolve(v, p, 2)
	require.NoError(t, err)
	require.NoError(t, inventory.CheckStillValid(plan, v, p))

	granel := plan
	granel.Kind, granel.PackUnits, granel.BulkKg = entity.PlanBulkOnly, 0, d("1")
	assert.ErrorIs(t, inventory.CheckStillValid(granel, v, p), domain.ErrInvalidInput)

	v.ConsumeMode = entity.ConsumeMixed
	mixto := plan
	mixto.Kind, mixto.PackUnits, mixto.BulkKg = entity.PlanMixed, 0, d("1")
	assert.ErrorIs(t, inventory.CheckStillValid(mixto, v, p), domain.ErrStalePlan)
}

func TestKindAllowed(t *testing.T) {
	assert.True(t, inventory.KindAllowed(entity.ConsumeSoloPack, entity.PlanPackOnly))
	assert.False(t, inventory.KindAllowed(entity.ConsumeSoloPack, entity.PlanMixed))
	assert.True(t, inventory.KindAllowed(entity.ConsumeSoloGranel, entity.PlanBulkOnly))
	assert.False(t, inventory.KindAllowed(entity.ConsumeSoloGranel, entity.PlanPackOnly))
	assert.True(t, inventory.KindAllowed("", entity.PlanMixed))
	assert.False(t, inventory.KindAllowed(entity.ConsumeMixed, entity.PlanBulkOnly))
}

func TestValidatePlan(t *testing.T) {
	plan, err := inventory.Resolve(variant(entity.ConsumeMixed, 2, "0.5"), bulk("10"), 5)
	require.NoError(t, err)
	require.NoError(t, inventory.ValidatePlan(plan))

	adulterado := plan
	adulterado.BulkKg = d("0.5")
	assert.ErrorIs(t, inventory.ValidatePlan(adulterado), domain.ErrInvalidInput)

	sinTipo := plan
	sinTipo.Kind = "OTRO"
	assert.ErrorIs(t, inventory.ValidatePlan(sinTipo), domain.ErrInvalidInput)
}
