package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anrodrig/comanda/internal/adapter/dictionary"
	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/server/http/dto"
)

// WordHandler manages the vocabulary lexicon.
type WordHandler struct {
	facade VocabularyFacade
}

// NewWordHandler creates WordHandler instance.
func NewWordHandler(facade VocabularyFacade) *WordHandler {
	return &WordHandler{facade: facade}
}

// List handles GET /api/words.
func (h *WordHandler) List(c *gin.Context) {
	sort := model.WordSort(c.DefaultQuery("sort", string(model.WordSortAlphabetical)))
	switch sort {
	case model.WordSortAlphabetical, model.WordSortType, model.WordSortDate:
	default:
		c.Status(http.StatusBadRequest)
		return
	}

	words, err := h.facade.Words(c.Request.Context(), sort, c.Query("synonym"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]dto.WordResponse, 0, len(words))
	for i := range words {
		resp = append(resp, toWordResponse(&words[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/words. A word already in the lexicon is returned
// unchanged with 200; a freshly fetched one with 201.
func (h *WordHandler) Create(c *gin.Context) {
	var req dto.CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	word, created, err := h.facade.CreateWord(c.Request.Context(), req.Word)
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toWordResponse(word))
}

// Get handles GET /api/words/:word.
func (h *WordHandler) Get(c *gin.Context) {
	word, err := h.facade.Word(c.Request.Context(), c.Param("word"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWordResponse(word))
}

// Update handles PUT /api/words/:id.
func (h *WordHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	word, err := h.facade.UpdateWord(c.Request.Context(), id, model.WordUpdate{
		Type:       req.Type,
		Definition: req.Definition,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWordResponse(word))
}

// Delete handles DELETE /api/words/:id.
func (h *WordHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteWord(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WordHandler) writeError(c *gin.Context, err error) {
	var tooMany dictionary.TooManyRequestsError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidWord):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, dictionary.ErrWordNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &tooMany):
		c.Status(http.StatusServiceUnavailable)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toWordResponse(word *model.Word) dto.WordResponse {
	synonyms := word.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}
	return dto.WordResponse{
		ID:         word.ID,
		Word:       word.Word,
		Type:       word.Type,
		Definition: word.Definition,
		Synonyms:   synonyms,
		CreatedAt:  word.CreatedAt,
	}
}
