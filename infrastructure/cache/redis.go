package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidAudit = errors.New("audit without creative id")

const keyPrefix = "creative-audit:audit:"

// RedisAuditCache compartilha a auditoria atual entre instâncias. Cada escrita é um SET do objeto inteiro.
type RedisAuditCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisAuditCache(client redis.Cmdable, ttl time.Duration) *RedisAuditCache {
	return &RedisAuditCache{client: client, ttl: ttl}
}

// NewRedisClient cria o cliente e verifica a conexão
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logrus.WithField("addr", addr).Info("Cliente Redis conectado")
	return rdb, nil
}

func auditKey(creativeID string) string {
	return keyPrefix + creativeID
}

func (c *RedisAuditCache) Get(ctx context.Context, creativeID string) (*domain.Audit, error) {
	raw, err := c.client.Get(ctx, auditKey(creativeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	audit := &domain.Audit{}
	if err := json.Unmarshal(raw, audit); err != nil {
		return nil, fmt.Errorf("auditoria inválida no cache para %s: %w", creativeID, err)
	}
	return audit, nil
}

func (c *RedisAuditCache) Put(ctx context.Context, audit *domain.Audit) error {
	if audit == nil || audit.CreativeID == "" {
		return ErrInvalidAudit
	}

	body, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("serializando auditoria: %w", err)
	}

	if err := c.client.Set(ctx, auditKey(audit.CreativeID), body, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisAuditCache) Remove(ctx context.Context, creativeID string) error {
	if err := c.client.Del(ctx, auditKey(creativeID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
