package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crmlite/customers/internal/model"
	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const cachedCustomerTimeToLive = 10 * time.Minute

type CustomerCache interface {
	FindByID(context.Context, int64) (*model.Customer, error)
	EvictByID(context.Context, int64) error
	Cache(context.Context, *model.Customer) error
}

type redisCustomerCache struct {
	client *redis.Client
}

func NewRedisCustomerCache(client *redis.Client) CustomerCache {
	return &redisCustomerCache{client: client}
}

func (r *redisCustomerCache) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	res, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c model.Customer
	if err := msgpack.Unmarshal([]byte(res), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *redisCustomerCache) EvictByID(ctx context.Context, id int64) error {
	if _, err := r.client.Del(ctx, r.key(id)).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCustomerCache) Cache(ctx context.Context, c *model.Customer) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, r.key(c.ID), encoded, cachedCustomerTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCustomerCache) key(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}
