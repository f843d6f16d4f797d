package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DurableBuffer - список в Redis между консюмером Kafka и записью в БД.
// Голова списка - следующая на обработку запись.
type DurableBuffer struct {
	rdb *redis.Client
	key string
}

func NewDurableBuffer(rdb *redis.Client, key string) *DurableBuffer {
	return &DurableBuffer{rdb: rdb, key: key}
}

// NewRedisClient подключается и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// PushTail - обычная постановка в конец (RPUSH).
func (b *DurableBuffer) PushTail(ctx context.Context, payload string) error {
	n, err := b.rdb.RPush(ctx, b.key, payload).Result()
	if err != nil {
		return fmt.Errorf("buffer push: %w", err)
	}
	if n == 0 {
		return errors.New("buffer push: list length did not grow")
	}
	return nil
}

// PushHead возвращает записи в голову списка в исходном порядке:
// payloads[0] снова окажется первым на обработку.
func (b *DurableBuffer) PushHead(ctx context.Context, payloads ...string) error {
	if len(payloads) == 0 {
		return nil
	}
	// LPUSH вставляет аргументы по очереди слева, поэтому передаём их задом наперёд
	args := make([]interface{}, len(payloads))
	for i, p := range payloads {
		args[len(payloads)-1-i] = p
	}
	if err := b.rdb.LPush(ctx, b.key, args...).Err(); err != nil {
		return fmt.Errorf("buffer requeue: %w", err)
	}
	return nil
}

// PopHead забирает до n записей из головы. Пустой буфер - не ошибка, а пустой результат.
func (b *DurableBuffer) PopHead(ctx context.Context, n int) ([]string, error) {
	var (
		vals []string
		err  error
	)
	if n == 1 {
		var v string
		v, err = b.rdb.LPop(ctx, b.key).Result()
		vals = []string{v}
	} else {
		vals, err = b.rdb.LPopCount(ctx, b.key, n).Result()
	}
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buffer pop: %w", err)
	}
	return vals, nil
}

func (b *DurableBuffer) Len(ctx context.Context) (int64, error) {
	n, err := b.rdb.LLen(ctx, b.key).Result()
	if err != nil {
		return 0, fmt.Errorf("buffer length: %w", err)
	}
	return n, nil
}
