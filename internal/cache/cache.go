package cache

import (
	"context"
	"encoding/json"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const ProductCacheTTL = 10 * time.Minute

// GetProduct reads a product through the Redis cache, falling back to
// ScyllaDB and re-priming on a miss.
func GetProduct(productID string) (*models.Product, error) {
	ctx := context.Background()
	key := "product:" + productID

	// 1. Try Redis first
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	// 2. Fall back to ScyllaDB
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	var p models.Product
	p.ID = gocql.UUID(pid)
	err = session.Query(`SELECT name, description, brand, age_range, category, price, stock, low_stock_threshold, sku, weight_kg, image_keys, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, p.ID).Scan(
		&p.Name, &p.Description, &p.Brand, &p.AgeRange, &p.Category, &p.Price, &p.Stock,
		&p.LowStockThreshold, &p.SKU, &p.WeightKg, &p.ImageKeys, &p.Tags, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Prime the cache
	jsonData, _ := json.Marshal(p)
	database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return &p, nil
}

// InvalidateProduct drops the cached copy after a catalog write.
func InvalidateProduct(productID string) {
	database.Redis.Del(context.Background(), "product:"+productID)
}
