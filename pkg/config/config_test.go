package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "warehouse-api", cfg.App.Name)
	assert.Equal(t, "read_committed", cfg.Fulfillment.Isolation)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "warehouse.events", cfg.AMQP.Exchange)
	assert.Empty(t, cfg.AMQP.URL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
}

func TestFromViper_Sobrescritos(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("FULFILLMENT_ISOLATION", "SERIALIZABLE")
	v.Set("IDEMPOTENCY_TTL", "90m")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "serializable", cfg.Fulfillment.Isolation)
	assert.Equal(t, 90*time.Minute, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestFromViper_IsolationInvalido(t *testing.T) {
	v := viper.New()
	v.Set("FULFILLMENT_ISOLATION", "read_uncommitted")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_TTLInvalido(t *testing.T) {
	v := viper.New()
	v.Set("IDEMPOTENCY_TTL", "un-dia")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "warehouse", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/warehouse?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
