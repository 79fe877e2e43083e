package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// MockEntryRepository is a testify mock for ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindInRange(ctx context.Context, branch valueobject.BranchFilter, dateRange valueobject.DateRange) ([]ledger.Entry, error) {
	args := m.Called(ctx, branch, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveBatch(ctx context.Context, entries []*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter ledger.EntryFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ ledger.EntryRepository = (*MockEntryRepository)(nil)

func setupEntryTestRouter() (*gin.Engine, *MockEntryRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockEntryRepository)
	service := ledgerapp.NewEntryService(mockRepo)
	h := NewEntryHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine, mockRepo
}

func TestEntryHandlerCreateEntry(t *testing.T) {
	t.Run("creates an expense entry and returns 201", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"date":        "2024-03-08",
			"description": "Aluguel",
			"amount":      "1200.00",
			"kind":        "EXPENSE",
			"category":    "Operacional",
			"branch":      "PRIMARY",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledger/entries", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "2024-03-08", data["date"])
		assert.Equal(t, "EXPENSE", data["kind"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a malformed date with 400", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		body, _ := json.Marshal(map[string]any{
			"date":        "08/03/2024",
			"description": "Aluguel",
			"amount":      "1200.00",
			"kind":        "EXPENSE",
			"category":    "Operacional",
			"branch":      "PRIMARY",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledger/entries", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects an unknown kind before reaching the service", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		body, _ := json.Marshal(map[string]any{
			"date":        "2024-03-08",
			"description": "Aluguel",
			"amount":      "1200.00",
			"kind":        "TRANSFER",
			"category":    "Operacional",
			"branch":      "PRIMARY",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledger/entries", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Save")
	})
}

func TestEntryHandlerCreateRecurring(t *testing.T) {
	t.Run("expands installments and returns all created entries", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		mockRepo.On("SaveBatch", mock.Anything, mock.AnythingOfType("[]*ledger.Entry")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"description":  "Aluguel",
			"amount":       "1200.00",
			"category":     "Operacional",
			"branch":       "PRIMARY",
			"start_date":   "2024-01-31",
			"installments": 3,
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledger/entries/recurring", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		entries := resp.Data.([]interface{})
		require.Len(t, entries, 3)

		first := entries[0].(map[string]interface{})
		assert.Equal(t, "Aluguel (1/3)", first["description"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects zero installments", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		body, _ := json.Marshal(map[string]any{
			"description":  "Aluguel",
			"amount":       "1200.00",
			"category":     "Operacional",
			"branch":       "PRIMARY",
			"start_date":   "2024-01-31",
			"installments": 0,
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/ledger/entries/recurring", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "SaveBatch")
	})
}

func TestEntryHandlerDeleteEntry(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		id := uuid.New()
		mockRepo.On("FindByID", mock.Anything, id).Return(&ledger.Entry{}, nil)
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/ledger/entries/"+id.String(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a non-UUID id", func(t *testing.T) {
		engine, mockRepo := setupEntryTestRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/ledger/entries/not-a-uuid", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}
