package repository

import "context"

// SequenceRepository contador de códigos internos.
type SequenceRepository interface {
	// ClaimRange reserva count números consecutivos y devuelve el primero.
	// Lectura y avance son una sola operación atómica.
	ClaimRange(ctx context.Context, count int64) (int64, error)
}
