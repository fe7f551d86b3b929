package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/response"
)

type MockAuthorService struct {
	CreateFunc func(ctx context.Context, cmd model.CreateAuthorCommand) (*model.AuthorDTO, error)
	UpdateFunc func(ctx context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error)
}

func (m *MockAuthorService) Create(ctx context.Context, cmd model.CreateAuthorCommand) (*model.AuthorDTO, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *MockAuthorService) Update(ctx context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error) {
	return m.UpdateFunc(ctx, cmd)
}

func setupRouter(svc *MockAuthorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc)

	r := gin.New()
	r.POST("/authors", h.Create)
	r.PUT("/authors/:id", h.Update)
	return r
}

func perform(r *gin.Engine, method, path string, body map[string]interface{}) (*httptest.ResponseRecorder, response.Response) {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateAuthorHandler(t *testing.T) {
	t.Run("should pass: parses birth date", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{
			CreateFunc: func(_ context.Context, cmd model.CreateAuthorCommand) (*model.AuthorDTO, error) {
				require.NotNil(t, cmd.BirthDate)
				assert.Equal(t, time.Date(1960, 7, 11, 0, 0, 0, 0, time.UTC), *cmd.BirthDate)
				bd := model.RestoreBirthDate(*cmd.BirthDate)
				return &model.AuthorDTO{ID: core.MustID[model.Author](1), Name: cmd.Name, BirthDate: &bd, Version: 1}, nil
			},
		})

		w, resp := perform(r, http.MethodPost, "/authors", map[string]interface{}{
			"name": "Harper", "birthDate": "1960-07-11",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Harper", data["name"])
		assert.Equal(t, "1960-07-11", data["birthDate"])
		assert.Equal(t, float64(1), data["version"])
	})

	t.Run("should fail: missing name and bad date", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{})

		w, resp := perform(r, http.MethodPost, "/authors", map[string]interface{}{
			"birthDate": "11/07/1960",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Errors, 2)
		assert.Equal(t, "name: is required", resp.Errors[0].Message)
		assert.Equal(t, "birthDate: must be a valid date", resp.Errors[1].Message)
	})

	t.Run("should map service violations", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{
			CreateFunc: func(context.Context, model.CreateAuthorCommand) (*model.AuthorDTO, error) {
				return nil, core.NewValidationError(core.Violation{Field: "birthDate", Message: "birth date must be before today"})
			},
		})

		w, resp := perform(r, http.MethodPost, "/authors", map[string]interface{}{
			"name": "Future", "birthDate": "2999-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "birthDate: birth date must be before today", resp.Errors[0].Message)
	})
}

func TestUpdateAuthorHandler(t *testing.T) {
	t.Run("should pass", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{
			UpdateFunc: func(_ context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error) {
				assert.Equal(t, int64(3), cmd.ID.Value())
				assert.Nil(t, cmd.BirthDate)
				return &model.AuthorDTO{ID: cmd.ID, Name: cmd.Name, Version: cmd.Version + 1}, nil
			},
		})

		w, resp := perform(r, http.MethodPut, "/authors/3", map[string]interface{}{
			"name": "Renamed", "version": 4,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(5), data["version"])
		assert.NotContains(t, data, "birthDate")
	})

	t.Run("should fail: version must be positive", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{})

		w, resp := perform(r, http.MethodPut, "/authors/3", map[string]interface{}{
			"name": "Renamed", "version": 0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "version: must be a positive integer", resp.Errors[0].Message)
	})

	t.Run("should map conflicts", func(t *testing.T) {
		r := setupRouter(&MockAuthorService{
			UpdateFunc: func(_ context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error) {
				return nil, &core.OptimisticLockError{Resource: model.ResourceAuthor, ID: cmd.ID.Value(), ExpectedVersion: cmd.Version}
			},
		})

		w, resp := perform(r, http.MethodPut, "/authors/3", map[string]interface{}{
			"name": "Renamed", "version": 1,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, response.CodeOptimisticLock, resp.Errors[0].Code)
	})
}
