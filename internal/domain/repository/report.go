package repository

import (
	"context"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// ReportRepository describes read-only aggregation queries.
type ReportRepository interface {
	// DailyBalance groups delivered orders per day inside [from, to].
	DailyBalance(ctx context.Context, from, to time.Time) ([]model.DailyBalance, error)
}
