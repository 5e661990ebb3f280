package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mdbarber/booking-api/internal/domain/booking"
)

// TTL corto: la lista de slots es solo una pista para el cliente, el
// write-path siempre re-verifica contra el estado actual.
const availabilityTTL = 60 * time.Second

// Availability cachea el resultado del cálculo de slots por
// (fecha, servicio) y se invalida en cada escritura de citas.
// Un puntero nil deshabilita el cache (Redis no configurado).
type Availability struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewAvailability(rdb *redis.Client, log *zap.Logger) *Availability {
	if rdb == nil {
		return nil
	}
	return &Availability{rdb: rdb, log: log}
}

func slotsKey(date string, serviceID uint) string {
	return fmt.Sprintf("availability:%s:%d", date, serviceID)
}

func (a *Availability) Get(ctx context.Context, date string, serviceID uint) ([]booking.TimeSlot, bool) {
	if a == nil {
		return nil, false
	}

	b, err := a.rdb.Get(ctx, slotsKey(date, serviceID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			a.log.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []booking.TimeSlot
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (a *Availability) Set(ctx context.Context, date string, serviceID uint, slots []booking.TimeSlot) {
	if a == nil {
		return
	}

	b, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := a.rdb.Set(ctx, slotsKey(date, serviceID), b, availabilityTTL).Err(); err != nil {
		a.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// InvalidateDay borra los slots cacheados de todos los servicios para
// una fecha; se llama tras crear, mover o cambiar el estado de una cita.
func (a *Availability) InvalidateDay(ctx context.Context, date string) {
	if a == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%s:*", date)
	iter := a.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := a.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			a.log.Warn("availability cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		a.log.Warn("availability cache scan failed", zap.Error(err))
	}
}

// InvalidateAll vacía el cache completo de disponibilidad; se usa
// cuando cambia el horario semanal o los bloqueos de agenda.
func (a *Availability) InvalidateAll(ctx context.Context) {
	if a == nil {
		return
	}

	iter := a.rdb.Scan(ctx, 0, "availability:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := a.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			a.log.Warn("availability cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		a.log.Warn("availability cache scan failed", zap.Error(err))
	}
}
