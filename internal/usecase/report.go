package usecase

import (
	"context"
	"time"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/domain/repository"
)

// reportWindow is how far back the balance report reaches.
const reportWindow = 7 * 24 * time.Hour

// ReportUseCase exposes read-only aggregations.
type ReportUseCase struct {
	reports repository.ReportRepository
	users   repository.UserRepository
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository, users repository.UserRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, users: users}
}

// DailyBalance returns per-day delivered order counts and revenue for the
// last seven days. Admin only.
func (u *ReportUseCase) DailyBalance(ctx context.Context, actorID int64) ([]model.DailyBalance, error) {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrNotAdmin
	}

	now := time.Now()
	return u.reports.DailyBalance(ctx, now.Add(-reportWindow), now)
}
