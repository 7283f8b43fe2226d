package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizplan/internal/datasource"
	"bizplan/internal/kvstore"
	"bizplan/internal/model"
	"bizplan/internal/service"
	serviceMocks "bizplan/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("store down")
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("store down")
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(kvstore.NewMemory()))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(failingStore{}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
	})
}

func TestListTasks(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Get("/api/tasks", ListTasks(mockSvc))

	t.Run("success", func(t *testing.T) {
		tasks := []*model.Task{{ID: uuid.NewString(), Title: "write report"}}
		mockSvc.On("ListFiltered", mock.Anything, (*bool)(nil)).Return(tasks, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool          `json:"success"`
			Count   int           `json:"count"`
			Data    []*model.Task `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "write report", body.Data[0].Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("completed filter", func(t *testing.T) {
		mockSvc.On("ListFiltered", mock.Anything, mock.MatchedBy(func(b *bool) bool {
			return b != nil && *b
		})).Return([]*model.Task{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks?completed=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks?completed=maybe", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListFiltered", mock.Anything, (*bool)(nil)).
			Return(nil, errors.New("storage failure")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Post("/api/tasks", CreateTask(mockSvc))

	t.Run("success", func(t *testing.T) {
		created := &model.Task{ID: uuid.NewString(), Title: "buy milk"}
		mockSvc.On("Create", mock.Anything, service.CreateTaskInput{Title: "buy milk"}).
			Return(created, nil).Once()

		payload, _ := json.Marshal(map[string]string{"title": "buy milk"})
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty title", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, service.CreateTaskInput{}).
			Return(nil, service.ErrTitleRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte(`{not json`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Get("/api/tasks/:id", GetTask(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Task{ID: id}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	// Malformed ids behave exactly like unknown ids so callers cannot tell
	// a local backend from a remote one by probing with garbage.
	t.Run("malformed id reports absence", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Contains(t, body.Message, "not found")
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, "not-a-uuid")
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).
			Return(nil, &datasource.NotFoundError{Entity: "task", ID: id}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Put("/api/tasks/:id", UpdateTask(mockSvc))

	id := uuid.NewString()
	title := "refreshed"

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, model.TaskPatch{Title: &title}).
			Return(&model.Task{ID: id, Title: title}, nil).Once()

		payload, _ := json.Marshal(map[string]string{"title": title})
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+id, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, mock.Anything).
			Return(nil, &datasource.NotFoundError{Entity: "task", ID: id}).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+id, bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Delete("/api/tasks/:id", DeleteTask(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, id).
			Return(&datasource.NotFoundError{Entity: "task", ID: id}).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestToggleTask(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := fiber.New()
	app.Patch("/api/tasks/:id/toggle", ToggleTask(mockSvc))

	id := uuid.NewString()
	mockSvc.On("ToggleCompletion", mock.Anything, id).
		Return(&model.Task{ID: id, Completed: true}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/tasks/"+id+"/toggle", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data model.Task `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.True(t, body.Data.Completed)
	mockSvc.AssertExpectations(t)
}

func TestCreateResource(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Post("/api/resources", CreateResource(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.CreateResourceInput{
			Name:     "notes.txt",
			Content:  "data:text/plain;base64,aGVsbG8=",
			Size:     5,
			Mimetype: "text/plain",
		}
		created := &model.Resource{ID: uuid.NewString(), Name: in.Name, Type: model.ResourceDocument}
		mockSvc.On("Create", mock.Anything, in).Return(created, nil).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing content", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrContentRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewReader([]byte(`{"name":"x"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchResourcesByTags(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Get("/api/resources/search", SearchResourcesByTags(mockSvc))

	t.Run("with tags", func(t *testing.T) {
		mockSvc.On("FindByTags", mock.Anything, []string{"work", "urgent"}).
			Return([]*model.Resource{{ID: uuid.NewString()}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources/search?tags=work,urgent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no tags returns all", func(t *testing.T) {
		mockSvc.On("FindByTags", mock.Anything, []string(nil)).
			Return([]*model.Resource{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources/search", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListResourcesByType(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Get("/api/resources/type/:type", ListResourcesByType(mockSvc))

	t.Run("valid type", func(t *testing.T) {
		mockSvc.On("FindByType", mock.Anything, model.ResourceImage).
			Return([]*model.Resource{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources/type/image", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/resources/type/video", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouteOrdering(t *testing.T) {
	// The search and type routes must not be shadowed by /resources/:id.
	mockTasks := new(serviceMocks.MockTaskService)
	mockResources := new(serviceMocks.MockResourceService)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, kvstore.NewMemory(), mockTasks, mockResources)

	mockResources.On("FindByTags", mock.Anything, []string{"a"}).
		Return([]*model.Resource{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/resources/search?tags=a", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockResources.AssertExpectations(t)
}
