package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	testhelpers "github.com/anrodrig/comanda/internal/test"
)

func TestReportDailyBalance(t *testing.T) {
	reports := &testhelpers.ReportRepositoryStub{Rows: []model.DailyBalance{{Day: "2024-01-01", Quantity: 3, Balance: 27.5}}}
	users := testhelpers.NewUserRepositoryStub()
	admin := users.Add(&model.User{Email: "a@example.com", Role: model.RoleAdmin})
	uc := NewReportUseCase(reports, users)

	rows, err := uc.DailyBalance(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Quantity != 3 {
		t.Fatalf("unexpected rows %+v", rows)
	}

	window := reports.To.Sub(reports.From)
	if window != 7*24*time.Hour {
		t.Fatalf("expected a seven day window, got %s", window)
	}
}

func TestReportDailyBalanceRequiresAdmin(t *testing.T) {
	reports := &testhelpers.ReportRepositoryStub{}
	users := testhelpers.NewUserRepositoryStub()
	customer := users.Add(&model.User{Email: "c@example.com", Role: model.RoleUser})
	uc := NewReportUseCase(reports, users)

	if _, err := uc.DailyBalance(context.Background(), customer.ID); !errors.Is(err, domainErrors.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}
