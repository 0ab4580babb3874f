package get_day_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SitterAvailability/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-SitterAvailability/pkg/logger"
)

const sitterID = "e3d2c1b0-a9f8-4e7d-8c6b-5a4f3e2d1c0b"

type fakeUseCase struct {
	got  *getDaySlots.Request
	resp *getDaySlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDaySlots.Request) (*getDaySlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sitters/{sitterId}/availability/slots", NewHandler(uc, logger.Nop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getDaySlots.Response{
		SitterID:        sitterID,
		ServiceType:     domain.ServiceWalk,
		Date:            "2025-06-10",
		Timezone:        "Europe/Moscow",
		Config:          domain.ServiceConfig{ServiceType: domain.ServiceWalk, Timezone: "Europe/Moscow", Capacity: 1},
		DurationMinutes: 30,
		Slots: []domain.Slot{
			{Date: "2025-06-10", StartMinute: 540, EndMinute: 570, Bookable: true},
			{Date: "2025-06-10", StartMinute: 570, EndMinute: 600, Reason: &domain.Reason{
				Bucket: domain.ReasonExistingBooking, Cause: domain.CauseBookingConfirmed, Explanation: "busy",
			}},
		},
	}}

	w := serve(uc, fmt.Sprintf("/sitters/%s/availability/slots?serviceType=walk&date=2025-06-10&durationMinutes=30&lang=ru", sitterID))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 30.0, *uc.got.DurationMinutes)
	assert.Equal(t, "ru", uc.got.Locale)

	var body DaySlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.BookableCount)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "2025-06-10", body.Slots[0].Date)
	assert.Equal(t, "09:00", body.Slots[0].StartTime.String())
	assert.Nil(t, body.Slots[0].Reason)
	assert.Equal(t, "existing_booking", body.Slots[1].Reason.Bucket)
}

func TestHandle_Errors(t *testing.T) {
	base := fmt.Sprintf("/sitters/%s/availability/slots", sitterID)

	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing service", target: base + "?date=2025-06-10", want: http.StatusBadRequest},
		{name: "missing date", target: base + "?serviceType=walk", want: http.StatusBadRequest},
		{name: "duration not a number", target: base + "?serviceType=walk&date=2025-06-10&durationMinutes=abc", want: http.StatusBadRequest},
		{name: "invalid duration", target: base + "?serviceType=walk&date=2025-06-10&durationMinutes=0", err: getDaySlots.ErrInvalidDuration, want: http.StatusBadRequest},
		{name: "invalid service", target: base + "?serviceType=boarding&date=2025-06-10", err: getDaySlots.ErrInvalidService, want: http.StatusBadRequest},
		{name: "invalid sitter", target: "/sitters/x/availability/slots?serviceType=walk&date=2025-06-10", err: getDaySlots.ErrInvalidSitter, want: http.StatusBadRequest},
		{name: "timeout", target: base + "?serviceType=walk&date=2025-06-10", err: fmt.Errorf("%w: load", getDaySlots.ErrTimeout), want: http.StatusGatewayTimeout},
		{name: "unavailable", target: base + "?serviceType=walk&date=2025-06-10", err: fmt.Errorf("%w: load", getDaySlots.ErrUnavailable), want: http.StatusServiceUnavailable},
		{name: "unexpected", target: base + "?serviceType=walk&date=2025-06-10", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
