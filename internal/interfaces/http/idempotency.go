package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// ErrIdempotencyKeyReused la llave ya se usó con una solicitud distinta.
var ErrIdempotencyKeyReused = errors.New("la Idempotency-Key ya se usó con otra solicitud")

// IdempotencyStore guarda el resultado exitoso de una solicitud por Idempotency-Key,
// junto con la huella de la solicitud que lo produjo.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (id int64, fingerprint string, ok bool, err error)
	Save(ctx context.Context, key string, id int64, fingerprint string) error
}

// Idempotency colapsa solicitudes concurrentes con la misma llave (singleflight) y, si hay
// store, devuelve el resultado guardado en repeticiones posteriores. Solo se guardan éxitos.
// Una llave repetida con otra huella responde ErrIdempotencyKeyReused sin ejecutar nada.
type Idempotency struct {
	store IdempotencyStore
	group singleflight.Group
	log   *logger.Logger
}

// NewIdempotency construye el colapsador. store puede ser nil (solo singleflight).
func NewIdempotency(store IdempotencyStore, log *logger.Logger) *Idempotency {
	return &Idempotency{store: store, log: log}
}

// idemOutcome es lo que comparten los que esperan la misma llave. fingerprint es la de
// la solicitud que produjo el resultado (la del líder o la guardada en el store).
type idemOutcome struct {
	id          int64
	fingerprint string
	replayed    bool
	err         error
}

// Do ejecuta fn una sola vez por llave en vuelo. replayed=true si el ID salió del store.
// Un store caído no bloquea la operación: se registra y se continúa sin él.
func (i *Idempotency) Do(ctx context.Context, key, fingerprint string, fn func() (int64, error)) (int64, bool, error) {
	if id, stored, ok := i.lookup(ctx, key); ok {
		return i.settle(key, fingerprint, idemOutcome{id: id, fingerprint: stored, replayed: true})
	}

	v, _, _ := i.group.Do(key, func() (interface{}, error) {
		if id, stored, ok := i.lookup(ctx, key); ok {
			return idemOutcome{id: id, fingerprint: stored, replayed: true}, nil
		}
		id, err := fn()
		if err != nil {
			return idemOutcome{fingerprint: fingerprint, err: err}, nil
		}
		if i.store != nil {
			if err := i.store.Save(context.WithoutCancel(ctx), key, id, fingerprint); err != nil {
				i.log.Warn().Err(err).Str("idempotency_key", key).Msg("no se pudo guardar el resultado idempotente")
			}
		}
		return idemOutcome{id: id, fingerprint: fingerprint}, nil
	})
	return i.settle(key, fingerprint, v.(idemOutcome))
}

func (i *Idempotency) settle(key, fingerprint string, out idemOutcome) (int64, bool, error) {
	if out.fingerprint != fingerprint {
		i.log.Warn().Str("idempotency_key", key).Msg("Idempotency-Key reutilizada con otra solicitud")
		return 0, false, ErrIdempotencyKeyReused
	}
	if out.err != nil {
		return 0, false, out.err
	}
	return out.id, out.replayed, nil
}

func (i *Idempotency) lookup(ctx context.Context, key string) (int64, string, bool) {
	if i.store == nil {
		return 0, "", false
	}
	id, fingerprint, ok, err := i.store.Get(ctx, key)
	if err != nil {
		i.log.Warn().Err(err).Str("idempotency_key", key).Msg("no se pudo leer el store de idempotencia")
		return 0, "", false
	}
	return id, fingerprint, ok
}

// requestFingerprint resume los campos que determinan el resultado del ingreso.
// created_at se normaliza a UTC: el mismo instante en otra zona es la misma solicitud.
func requestFingerprint(in inventory.AddProductInput) string {
	raw := fmt.Sprintf("%d|%d|%d|%s", in.ProductID, in.WarehouseID, in.Amount, in.CreatedAt.UTC().Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
