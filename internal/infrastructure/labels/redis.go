// Package labels encola pedidos de etiqueta para el servicio de impresión.
// Cada pedido viaja como sobre JSON {type, payload} en una lista de Redis (LPUSH; el consumidor hace BRPOP).
package labels

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// JobType tipo de trabajo dentro del sobre.
const JobType = "etiqueta"

// Job sobre genérico compartido con los workers de impresión.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Payload contenido de un pedido de etiqueta.
type Payload struct {
	Description string `json:"description"`
	EAN13       string `json:"ean13"`
	Copies      int    `json:"copies"`
}

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Describe texto final de la etiqueta: la descripción y, si viene, el contenido con coma decimal.
func Describe(job entity.LabelJob) string {
	if job.ContentKg == nil {
		return job.Description
	}
	kg, _ := job.ContentKg.Float64()
	return printer.Sprintf("%s %.3f kg", job.Description, kg)
}

// Envelope serializa un pedido dentro del sobre Job.
func Envelope(job entity.LabelJob) ([]byte, error) {
	copies := job.Copies
	if copies <= 0 {
		copies = 1
	}
	data, err := json.Marshal(Payload{Description: Describe(job), EAN13: job.EAN13, Copies: copies})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Job{Type: JobType, Payload: data})
}

// NewRedis crea el cliente y valida la conexión al arrancar.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// RedisPublisher encola pedidos en una lista de Redis.
type RedisPublisher struct {
	rdb   *redis.Client
	queue string
}

// NewRedisPublisher construye el publicador sobre la cola indicada.
func NewRedisPublisher(rdb *redis.Client, queue string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, queue: queue}
}

// Publish encola todos los pedidos en un solo LPUSH.
func (p *RedisPublisher) Publish(ctx context.Context, jobs []entity.LabelJob) error {
	if len(jobs) == 0 {
		return nil
	}
	values := make([]any, 0, len(jobs))
	for _, j := range jobs {
		encoded, err := Envelope(j)
		if err != nil {
			return fmt.Errorf("etiqueta %s: %w", j.EAN13, err)
		}
		values = append(values, encoded)
	}
	return p.rdb.LPush(ctx, p.queue, values...).Err()
}
