package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jhoicas/warehouse-api/pkg/config"
)

const keyPrefix = "idem:"

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type storedResult struct {
	ID          int64  `json:"id"`
	Fingerprint string `json:"fingerprint"`
}

// IdempotencyStore guarda el ID del ingreso exitoso y la huella de la solicitud
// asociados a un Idempotency-Key.
type IdempotencyStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el almacén. ttl es la vigencia de cada llave.
func NewIdempotencyStore(client *goredis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Key devuelve la llave de Redis para un Idempotency-Key.
func Key(idempotencyKey string) string {
	return keyPrefix + idempotencyKey
}

// Get devuelve el ID y la huella guardados; ok=false si la llave no existe o expiró.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (int64, string, bool, error) {
	value, err := s.client.Get(ctx, Key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, fmt.Errorf("redis get: %w", err)
	}
	var res storedResult
	if err := json.Unmarshal([]byte(value), &res); err != nil {
		return 0, "", false, fmt.Errorf("decodificar %s: %w", Key(key), err)
	}
	return res.ID, res.Fingerprint, true, nil
}

// Save guarda el resultado con el TTL configurado. No sobrescribe una llave existente.
func (s *IdempotencyStore) Save(ctx context.Context, key string, id int64, fingerprint string) error {
	payload, err := json.Marshal(storedResult{ID: id, Fingerprint: fingerprint})
	if err != nil {
		return err
	}
	if err := s.client.SetNX(ctx, Key(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
