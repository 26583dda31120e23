package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRecord is one journaled ledger event.
type EventRecord struct {
	ID        uuid.UUID
	Kind      string
	Actor     string
	Payload   map[string]any
	CreatedAt time.Time
}

// OrderRecord mirrors an order actor's last known state in the archive, so
// shop order history can be listed without walking the ledger.
type OrderRecord struct {
	Address   string
	Shop      string
	Buyer     string
	Item      string
	OrderID   uint64
	PriceNano uint64
	Status    string
	UpdatedAt time.Time
}

type ArchiveRepository interface {
	InsertEvent(ctx context.Context, rec *EventRecord) error
	UpsertOrder(ctx context.Context, rec *OrderRecord) error
	ListOrdersByShop(ctx context.Context, shop string) ([]OrderRecord, error)
}

type pgArchiveRepo struct{ pool *pgxpool.Pool }

func NewArchiveRepository(pool *pgxpool.Pool) ArchiveRepository {
	return &pgArchiveRepo{pool: pool}
}

func (r *pgArchiveRepo) InsertEvent(ctx context.Context, rec *EventRecord) error {
	rec.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO ledger_events (id, kind, actor, payload, created_at)
		 VALUES ($1, $2, $3, $4, NOW()) RETURNING created_at`,
		rec.ID, rec.Kind, rec.Actor, rec.Payload,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *pgArchiveRepo) UpsertOrder(ctx context.Context, rec *OrderRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders_archive (address, shop, buyer, item, order_id, price_nano, status, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (address) DO UPDATE
		 SET status = EXCLUDED.status, price_nano = EXCLUDED.price_nano, updated_at = NOW()`,
		rec.Address, rec.Shop, rec.Buyer, rec.Item, rec.OrderID, rec.PriceNano, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

func (r *pgArchiveRepo) ListOrdersByShop(ctx context.Context, shop string) ([]OrderRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT address, shop, buyer, item, order_id, price_nano, status, updated_at
		 FROM orders_archive WHERE shop = $1 ORDER BY order_id`,
		shop,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(&rec.Address, &rec.Shop, &rec.Buyer, &rec.Item,
			&rec.OrderID, &rec.PriceNano, &rec.Status, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, rec)
	}
	return orders, nil
}
