package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettingsHandler_GetOrdering(t *testing.T) {
	mockService := new(MockSettingsService)
	handler := NewSettingsHandler(mockService, zerolog.Nop())
	mockService.On("OrderingEnabled", mock.Anything).Return(true, nil).Once()
	mockService.On("OrderingEnabled", mock.Anything).Return(false, errors.New("db down")).Once()

	w := httptest.NewRecorder()
	handler.GetOrdering(w, httptest.NewRequest(http.MethodGet, "/api/settings/ordering", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orderingEnabled":true}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.GetOrdering(w, httptest.NewRequest(http.MethodGet, "/api/settings/ordering", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSettingsHandler_SetOrdering(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockSettingsService)
		expectedStatus int
	}{
		{
			name: "Disable",
			body: `{"orderingEnabled":false}`,
			setupMock: func(m *MockSettingsService) {
				m.On("SetOrderingEnabled", mock.Anything, false).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing flag",
			body:           `{}`,
			setupMock:      func(m *MockSettingsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not a boolean",
			body:           `{"orderingEnabled":"yes"}`,
			setupMock:      func(m *MockSettingsService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Store failure",
			body: `{"orderingEnabled":true}`,
			setupMock: func(m *MockSettingsService) {
				m.On("SetOrderingEnabled", mock.Anything, true).Return(errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSettingsService)
			tt.setupMock(mockService)
			handler := NewSettingsHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.SetOrdering(w, httptest.NewRequest(http.MethodPost, "/api/settings/ordering", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
