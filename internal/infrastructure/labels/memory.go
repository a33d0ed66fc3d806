package labels

import (
	"context"
	"sync"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// Noop descarta los pedidos (REDIS_URL vacío).
type Noop struct{}

// Publish no hace nada.
func (Noop) Publish(context.Context, []entity.LabelJob) error { return nil }

// Memory acumula los pedidos; lo usan los tests.
type Memory struct {
	mu   sync.Mutex
	jobs []entity.LabelJob
	Err  error // si no es nil Publish falla con este error
}

// Publish guarda los pedidos o devuelve Err.
func (m *Memory) Publish(_ context.Context, jobs []entity.LabelJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.jobs = append(m.jobs, jobs...)
	return nil
}

// Jobs copia de los pedidos recibidos.
func (m *Memory) Jobs() []entity.LabelJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.LabelJob(nil), m.jobs...)
}
