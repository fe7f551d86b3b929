package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/domains/book/service"
	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/response"
	"bookcatalog/internal/shared/utils"
	"bookcatalog/internal/shared/violation"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

var bookFieldOrder = []string{"title", "price", "authorIds", "status", "version"}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/books
// ════════════════════════════════════════════════════════════════

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	if err := validateRequest(req.Validate()); err != nil {
		response.HandleError(c, err)
		return
	}

	authorIDs, status, err := convertRefs(req.AuthorIDs, *req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), model.CreateBookCommand{
		Title:     *req.Title,
		Price:     *req.Price,
		AuthorIDs: authorIDs,
		Status:    status,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam[model.Book](c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	if err := validateRequest(req.Validate()); err != nil {
		response.HandleError(c, err)
		return
	}

	authorIDs, status, err := convertRefs(req.AuthorIDs, *req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), model.UpdateBookCommand{
		ID:        id,
		Title:     *req.Title,
		Price:     *req.Price,
		AuthorIDs: authorIDs,
		Status:    status,
		Version:   *req.Version,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *Handler) GetByID(c *gin.Context) {
	id, err := utils.ParseIDParam[model.Book](c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/authors/:id/books
// ════════════════════════════════════════════════════════════════

func (h *Handler) ListByAuthor(c *gin.Context) {
	authorID, err := utils.ParseIDParam[authormodel.Author](c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	summaries, err := h.service.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	resp := make([]model.BookSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = s.ToResponse()
	}

	response.Success(c, http.StatusOK, resp)
}

func validateRequest(err error) error {
	violations, convErr := violation.FromStruct(err, bookFieldOrder...)
	if convErr != nil {
		return convErr
	}
	return violation.AsError(violations)
}

func convertRefs(rawAuthorIDs []int64, rawStatus string) ([]authormodel.AuthorID, model.PublishStatus, error) {
	authorIDs, err := core.IDsOf[authormodel.Author](rawAuthorIDs)
	if err != nil {
		return nil, 0, core.NewValidationError(core.Violation{Field: "authorIds", Message: "must be a positive integer"})
	}

	status, err := model.ParsePublishStatus(rawStatus)
	if err != nil {
		return nil, 0, core.NewValidationError(core.Violation{Field: "status", Message: "must be a valid value"})
	}

	return authorIDs, status, nil
}
