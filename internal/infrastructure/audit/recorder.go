// Package audit escribe los registros de auditoría como eventos zerolog.
package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// Logger recorder que emite un evento info por registro con campos estables.
type Logger struct {
	log zerolog.Logger
}

// NewLogger construye el recorder sobre el logger del componente.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Record implementa barcode.AuditRecorder e inventory.AuditRecorder.
func (l *Logger) Record(_ context.Context, rec entity.AuditRecord) {
	ev := l.log.Info().Str("action", rec.Action).Time("at", rec.At)
	if rec.RefID != "" {
		ev = ev.Str("ref_table", rec.RefTable).Str("ref_id", rec.RefID)
	}
	if rec.RefTable == entity.RefSale && rec.RefID != "" {
		ev = ev.Str("sale_ref", rec.RefID)
	}
	ev.Fields(rec.Fields).Msg("auditoria")
}

// Memory guarda los registros en memoria (tests y modo demo).
type Memory struct {
	mu      sync.Mutex
	records []entity.AuditRecord
}

// NewMemory crea un recorder vacío.
func NewMemory() *Memory {
	return &Memory{}
}

// Record agrega el registro.
func (m *Memory) Record(_ context.Context, rec entity.AuditRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

// Records copia de lo registrado, opcionalmente filtrado por acción.
func (m *Memory) Records(action string) []entity.AuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.AuditRecord, 0, len(m.records))
	for _, r := range m.records {
		if action == "" || r.Action == action {
			out = append(out, r)
		}
	}
	return out
}
