package postgres

import (
	"context"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// DailyBalance groups delivered orders per calendar day. The aggregation is
// done by the database, not in application code.
func (r *reportRepository) DailyBalance(ctx context.Context, from, to time.Time) ([]model.DailyBalance, error) {
	const query = `SELECT to_char(scheduled_at::date, 'YYYY-MM-DD') AS day,
                   COUNT(*) AS quantity,
                   SUM(total) AS balance
            FROM orders
            WHERE status='DELIVERED' AND scheduled_at >= $1 AND scheduled_at <= $2
            GROUP BY day
            ORDER BY day`
	rows, err := r.storage.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DailyBalance
	for rows.Next() {
		var entry model.DailyBalance
		if err := rows.Scan(&entry.Day, &entry.Quantity, &entry.Balance); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
