package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/author/service"
	"bookcatalog/internal/shared/response"
	"bookcatalog/internal/shared/utils"
	"bookcatalog/internal/shared/violation"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	if err := validateRequest(req.Validate(), "name", "birthDate"); err != nil {
		response.HandleError(c, err)
		return
	}

	birthDate, err := utils.ParseOptionalDate("birthDate", req.BirthDate)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), model.CreateAuthorCommand{
		Name:      *req.Name,
		BirthDate: birthDate,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam[model.Author](c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	if err := validateRequest(req.Validate(), "name", "birthDate", "version"); err != nil {
		response.HandleError(c, err)
		return
	}

	birthDate, err := utils.ParseOptionalDate("birthDate", req.BirthDate)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), model.UpdateAuthorCommand{
		ID:        id,
		Name:      *req.Name,
		BirthDate: birthDate,
		Version:   *req.Version,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto.ToResponse())
}

func validateRequest(err error, order ...string) error {
	violations, convErr := violation.FromStruct(err, order...)
	if convErr != nil {
		return convErr
	}
	return violation.AsError(violations)
}
