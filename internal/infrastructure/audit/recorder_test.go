package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/infrastructure/audit"
)

func TestLogger_RecordEscribeCamposEstables(t *testing.T) {
	var buf bytes.Buffer
	rec := audit.NewLogger(zerolog.New(&buf))

	rec.Record(context.Background(), entity.AuditRecord{
		Action:   entity.AuditPlanCommitted,
		RefTable: entity.RefSale,
		RefID:    "V-001",
		Fields:   map[string]any{"plan_kind": "MIXED", "pack_units": 2},
		At:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "PLAN_COMMITTED", got["action"])
	assert.Equal(t, "V-001", got["sale_ref"])
	assert.Equal(t, "MIXED", got["plan_kind"])
	assert.EqualValues(t, 2, got["pack_units"])
}

func TestMemory_FiltraPorAccion(t *testing.T) {
	m := audit.NewMemory()
	ctx := context.Background()
	m.Record(ctx, entity.AuditRecord{Action: entity.AuditPlanResolved})
	m.Record(ctx, entity.AuditRecord{Action: entity.AuditPlanCommitted})
	m.Record(ctx, entity.AuditRecord{Action: entity.AuditPlanResolved})

	assert.Len(t, m.Records(""), 3)
	assert.Len(t, m.Records(entity.AuditPlanResolved), 2)
}
