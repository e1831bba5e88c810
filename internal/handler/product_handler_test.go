package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crunchy-cruise/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		all            bool
		setupMock      func(*MockProductService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Available only",
			setupMock: func(m *MockProductService) {
				m.On("List", mock.Anything, false).Return([]model.Product{{Name: "Chin Chin", Available: true}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "All for admin",
			all:  true,
			setupMock: func(m *MockProductService) {
				m.On("List", mock.Anything, true).Return([]model.Product{{Name: "Chin Chin"}, {Name: "Zobo"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "Empty catalogue",
			setupMock: func(m *MockProductService) {
				m.On("List", mock.Anything, false).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "Service error",
			setupMock: func(m *MockProductService) {
				m.On("List", mock.Anything, false).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			tt.setupMock(mockService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.all {
				handler.ListAll(w, req)
			} else {
				handler.List(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var products []model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
				assert.Len(t, products, tt.expectedCount)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByName(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("GetByName", mock.Anything, "Chin Chin").Return(&model.Product{Name: "Chin Chin", PriceDisplay: "₦2,500"}, nil)
	mockService.On("GetByName", mock.Anything, "Suya").Return(nil, model.ErrProductNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/products/Chin%20Chin", nil)
	req.SetPathValue("name", "Chin Chin")
	w := httptest.NewRecorder()
	handler.GetByName(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":"₦2,500"`)

	req = httptest.NewRequest(http.MethodGet, "/api/products/Suya", nil)
	req.SetPathValue("name", "Suya")
	w = httptest.NewRecorder()
	handler.GetByName(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeProductNotFound, decodeError(t, w).Error)
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ProductRequest) bool {
			return r.Name == "Kuli Kuli" && r.Price == "₦1,500"
		})).Return(&model.Product{ID: uuid.New(), Name: "Kuli Kuli"}, nil)

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Kuli Kuli","price":"₦1,500"}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Price without digits", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Kuli Kuli","price":"free"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeValidation, decodeError(t, w).Error)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	id := uuid.New()
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("Update", mock.Anything, id, mock.Anything).Return(nil, model.ErrProductNotFound)
	mockService.On("Delete", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"Chin Chin","price":"₦2,500"}`))
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	handler.Update(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req.SetPathValue("id", id.String())
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req.SetPathValue("id", "nope")
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
