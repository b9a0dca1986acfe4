package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/server/http/dto"
)

// ReportHandler serves read-only aggregations for the back office.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler creates ReportHandler instance.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// DailyBalance handles GET /api/admin/reports/balance.
func (h *ReportHandler) DailyBalance(c *gin.Context) {
	rows, err := h.facade.DailyBalance(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotAdmin):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := make([]dto.DailyBalanceResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, dto.DailyBalanceResponse{
			Day:      row.Day,
			Quantity: row.Quantity,
			Balance:  row.Balance,
		})
	}
	c.JSON(http.StatusOK, resp)
}
