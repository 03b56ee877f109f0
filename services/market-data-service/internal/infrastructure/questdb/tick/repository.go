package tick

import (
	"context"
	"fmt"

	"github.com/muhammadchandra19/marketdepth/pkg/questdb"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS ticks (
	timestamp TIMESTAMP,
	instrument_id SYMBOL,
	last_price DOUBLE,
	volume LONG,
	depth_level INT,
	bid_price DOUBLE,
	bid_quantity LONG,
	ask_price DOUBLE,
	ask_quantity LONG,
	bid_prices STRING,
	bid_quantities STRING,
	ask_prices STRING,
	ask_quantities STRING,
	oi LONG
) TIMESTAMP(timestamp) PARTITION BY DAY WAL`

	insertQuery = `INSERT INTO ticks (timestamp, instrument_id, last_price, volume, depth_level,
	bid_price, bid_quantity, ask_price, ask_quantity,
	bid_prices, bid_quantities, ask_prices, ask_quantities, oi)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	selectColumns = `SELECT timestamp, instrument_id, last_price, volume, depth_level,
	bid_price, bid_quantity, ask_price, ask_quantity,
	bid_prices, bid_quantities, ask_prices, ask_quantities, oi FROM ticks WHERE 1=1`
)

// Repository represents the repository for archived ticks.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new tick repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// EnsureSchema creates the ticks table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.client.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create ticks table: %w", err)
	}
	return nil
}

// Store inserts one tick row.
func (r *Repository) Store(ctx context.Context, tick *Tick) error {
	err := r.client.Exec(ctx, insertQuery,
		tick.Timestamp, tick.InstrumentID, tick.LastPrice, tick.Volume, tick.DepthLevel,
		tick.BidPrice, tick.BidQuantity, tick.AskPrice, tick.AskQuantity,
		tick.BidPrices, tick.BidQuantities, tick.AskPrices, tick.AskQuantities, tick.OI,
	)
	if err != nil {
		return fmt.Errorf("failed to store tick: %w", err)
	}
	return nil
}

// GetByFilter returns the most recent ticks matching filter, newest first.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Tick, error) {
	query := selectColumns
	args := []any{}
	argIndex := 1

	if filter.InstrumentID != "" {
		query += fmt.Sprintf(" AND instrument_id = $%d", argIndex)
		args = append(args, filter.InstrumentID)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*Tick
	for rows.Next() {
		tick := &Tick{}
		err := rows.Scan(
			&tick.Timestamp, &tick.InstrumentID, &tick.LastPrice, &tick.Volume, &tick.DepthLevel,
			&tick.BidPrice, &tick.BidQuantity, &tick.AskPrice, &tick.AskQuantity,
			&tick.BidPrices, &tick.BidQuantities, &tick.AskPrices, &tick.AskQuantities, &tick.OI,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ticks, nil
}
