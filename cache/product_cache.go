package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/kisinja/smart-farmer/models"
	"github.com/redis/go-redis/v9"
)

const productTTL = time.Minute

// ProductCache keeps hot product details in redis. A nil *ProductCache
// is valid and disables caching, so handlers never branch on config.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(addr string) *ProductCache {
	if addr == "" {
		return nil
	}
	return &ProductCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func productKey(id string) string {
	return "product:" + id
}

func (pc *ProductCache) Get(ctx context.Context, id string) (*models.Product, bool) {
	if pc == nil {
		return nil, false
	}
	data, err := pc.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (pc *ProductCache) Set(ctx context.Context, product *models.Product) {
	if pc == nil || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := pc.client.Set(ctx, productKey(product.ID), data, productTTL).Err(); err != nil {
		log.Printf("⚠️ Failed to cache product %s: %v", product.ID, err)
	}
}

func (pc *ProductCache) Invalidate(ctx context.Context, id string) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, productKey(id)).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate product %s: %v", id, err)
	}
}
