package delete_exception

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
	"github.com/m04kA/SMC-SitterAvailability/pkg/logger"
)

const sitterID = "e3d2c1b0-a9f8-4e7d-8c6b-5a4f3e2d1c0b"

type mockService struct{ mock.Mock }

func (m *mockService) DeleteException(ctx context.Context, req *models.DeleteExceptionRequest) (*models.DeleteExceptionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.DeleteExceptionResponse)
	return resp, args.Error(1)
}

func serve(svc *mockService, userID, date string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/sitters/{sitterId}/availability/exceptions/{serviceType}/{date}",
		NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/sitters/"+sitterID+"/availability/exceptions/boarding/"+date, nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Deleted(t *testing.T) {
	for _, existed := range []bool{true, false} {
		svc := &mockService{}
		svc.On("DeleteException", mock.Anything, &models.DeleteExceptionRequest{
			ActorID:     sitterID,
			SitterID:    sitterID,
			ServiceType: "boarding",
			Date:        "2025-06-12",
		}).Return(&models.DeleteExceptionResponse{Deleted: existed, Audited: true}, nil)

		w := serve(svc, sitterID, "2025-06-12")
		require.Equal(t, http.StatusOK, w.Code)

		var body DeleteExceptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, existed, body.Deleted)
		assert.True(t, body.Audited)
		svc.AssertExpectations(t)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		err    error
		want   int
	}{
		{name: "no user", want: http.StatusUnauthorized},
		{name: "invalid date", userID: sitterID, err: availability.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "invalid sitter", userID: sitterID, err: availability.ErrInvalidSitter, want: http.StatusBadRequest},
		{name: "forbidden", userID: "0b7c6f1e-3c1d-4c55-9a55-2b0f1f5e6a11", err: availability.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", userID: sitterID, err: availability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("DeleteException", mock.Anything, mock.Anything).Return(nil, tt.err).Maybe()
			assert.Equal(t, tt.want, serve(svc, tt.userID, "2025-06-12").Code)
		})
	}
}
