package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

const (
	credentialKey = "backoffice:session:credential"
	userKey       = "backoffice:session:user"

	defaultConnectTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with
// a ping. A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis is a SessionStore holding the two session slots in Redis. Both
// keys are written in one transaction and carry a TTL matching the local
// credential max age, so an abandoned session eventually evaporates
// server-side too.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (r *Redis) Save(ctx context.Context, token string, user domain.User) error {
	cred := domain.Credential{Token: token, IssuedAt: r.now().UTC()}
	credData, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, credentialKey, credData, domain.CredentialMaxAge)
	pipe.Set(ctx, userKey, userData, domain.CredentialMaxAge)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context) (*domain.Credential, *domain.User, error) {
	vals, err := r.client.MGet(ctx, credentialKey, userKey).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	credRaw, okCred := vals[0].(string)
	userRaw, okUser := vals[1].(string)
	if !okCred || !okUser {
		return nil, nil, nil
	}

	var cred domain.Credential
	if err := json.Unmarshal([]byte(credRaw), &cred); err != nil {
		return nil, nil, fmt.Errorf("decode credential: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, nil, fmt.Errorf("decode user: %w", err)
	}
	return &cred, &user, nil
}

func (r *Redis) UpdateUser(ctx context.Context, user domain.User) error {
	exists, err := r.client.Exists(ctx, credentialKey).Result()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if exists == 0 {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := r.client.Set(ctx, userKey, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, credentialKey, userKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
