package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
)

var _ ports.TokenStore = (*RedisTokenStore)(nil)

// RedisConfig datos de conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisTokenStore comparte el token entre varias réplicas del BFF.
type RedisTokenStore struct {
	client *redis.Client
	key    string
}

// NewRedisTokenStore conecta y verifica la conexión con PING.
func NewRedisTokenStore(ctx context.Context, cfg RedisConfig) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: conectar a Redis %s: %w", cfg.Addr, err)
	}
	return NewRedisTokenStoreWithClient(client, ""), nil
}

// NewRedisTokenStoreWithClient reutiliza un cliente existente. prefix vacío usa "polimarket:".
func NewRedisTokenStoreWithClient(client *redis.Client, prefix string) *RedisTokenStore {
	if prefix == "" {
		prefix = "polimarket:"
	}
	return &RedisTokenStore{client: client, key: prefix + TokenKey}
}

// Load devuelve el token o "" si la clave no existe.
func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: leer token: %w", err)
	}
	return tok, nil
}

// Save guarda el token sin expiración; el backend decide su vigencia.
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	return nil
}

// Clear borra la clave.
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	return nil
}

// Close cierra el cliente Redis.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
