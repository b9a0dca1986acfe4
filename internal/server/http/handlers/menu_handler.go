package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/server/http/dto"
)

// MenuHandler serves the public menu and its administration.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler creates MenuHandler instance.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *gin.Context) {
	categories, err := h.facade.Menu(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.MenuCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items := make([]dto.MenuItemResponse, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, toMenuItemResponse(&item))
		}
		resp = append(resp, dto.MenuCategoryResponse{ID: cat.ID, Name: cat.Name, Items: items})
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/admin/menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.CreateMenuItem(c.Request.Context(), CurrentUserID(c), model.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// Update handles PUT /api/admin/menu/:id.
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MenuItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.UpdateMenuItem(c.Request.Context(), CurrentUserID(c), id, model.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Delete handles DELETE /api/admin/menu/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteMenuItem(c.Request.Context(), CurrentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleStock handles PUT /api/admin/menu/:id/stock.
func (h *MenuHandler) ToggleStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.facade.ToggleMenuItemStock(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMenuItemResponse(item))
}

func (h *MenuHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotAdmin):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrUnknownMenuItem):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toMenuItemResponse(item *model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		InStock:     item.InStock,
	}
}
