package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

// Client define o contrato de interface para qualquer serviço de cache que o Repositório possa usar.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// IncrWindow incrementa o contador de key; a chave nasce já com a expiração window.
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = errors.New("cache miss")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient cria o cliente Redis e testa a conexão com PING.
func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("não foi possível conectar ao Redis em %s: %w", addr, err)
	}

	return &RedisClient{rdb: rdb}, nil
}

// Get recupera o valor associado a uma chave.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set define um valor para uma chave com um tempo de expiração.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Delete remove as chaves do cache. Chaves inexistentes são ignoradas.
func (c *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// IncrWindow cria a chave com a expiração da janela (SET NX EX) e incrementa,
// na mesma transação, para que nenhum contador fique sem TTL.
func (c *RedisClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Close encerra as conexões com o Redis.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}

// NopClient é usado quando nenhum Redis está configurado: toda leitura é um miss.
type NopClient struct{}

func (NopClient) Get(context.Context, string) (string, error) { return "", ErrCacheMiss }
func (NopClient) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NopClient) Delete(context.Context, ...string) error { return nil }
func (NopClient) IncrWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, ErrCacheMiss
}

// GetJSON lê key e decodifica o JSON em dst. Devolve ErrCacheMiss se a chave não existir.
func GetJSON(ctx context.Context, c Client, key string, dst interface{}) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.UnmarshalFromString(raw, dst)
}

// SetJSON codifica value em JSON e grava em key.
func SetJSON(ctx context.Context, c Client, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.MarshalToString(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, expiration)
}

// AuthorStatisticsKey é a base das chaves de estatísticas de autores.
// Qualquer escrita em autores ou livros deve chamar BumpVersion sobre ela.
const AuthorStatisticsKey = "biblioteca:authors:statistics"

// versionTTL precisa ser bem maior que o TTL das entradas versionadas.
const versionTTL = 24 * time.Hour

// VersionKey é o contador de geração de base.
func VersionKey(base string) string {
	return base + ":version"
}

// VersionedKey devolve a chave da geração corrente de base. Uma leitura que
// consultou o DB antes de uma escrita grava numa geração que já foi abandonada.
func VersionedKey(ctx context.Context, c Client, base string) (string, error) {
	v, err := c.Get(ctx, VersionKey(base))
	if errors.Is(err, ErrCacheMiss) {
		v = "0"
	} else if err != nil {
		return "", err
	}
	return base + ":v" + v, nil
}

// BumpVersion abandona a geração corrente de base.
func BumpVersion(ctx context.Context, c Client, base string) error {
	_, err := c.IncrWindow(ctx, VersionKey(base), versionTTL)
	if errors.Is(err, ErrCacheMiss) {
		return nil
	}
	return err
}
