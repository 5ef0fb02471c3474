package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func bookingRouter(bookings *bookingRepoStub, vehicles *vehicleRepoStub, notifications *notificationRepoStub) *gin.Engine {
	if notifications == nil {
		notifications = &notificationRepoStub{}
	}
	uc := usecases.NewBookingUsecase(bookings, vehicles, &customerRepoStub{},
		usecases.NewNotificationUsecase(notifications))
	h := NewBookingHandler(uc)

	r := gin.New()
	r.POST("/api/v1/bookings", h.CreateBooking)
	r.GET("/api/v1/bookings", h.ListBookings)
	r.GET("/api/v1/bookings/:id", h.GetBooking)
	r.PUT("/api/v1/bookings/:id/status", h.UpdateStatus)
	r.GET("/api/v1/customers/:id/bookings", h.ListByCustomer)
	return r
}

func TestBookingHandler_Create(t *testing.T) {
	customerID := uuid.New()
	vehicleID := uuid.New()

	var created *entities.Booking
	bookings := &bookingRepoStub{
		createFn: func(_ context.Context, b *entities.Booking) error {
			b.ID = uuid.New()
			created = b
			return nil
		},
	}
	vehicles := &vehicleRepoStub{
		getByIDFn: func(context.Context, uuid.UUID) (*entities.Vehicle, error) {
			return &entities.Vehicle{ID: vehicleID, CustomerID: customerID}, nil
		},
	}
	r := bookingRouter(bookings, vehicles, nil)

	slot := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"customerId":%q,"vehicleId":%q,"scheduledAt":%q,"notes":"brake noise"}`,
		customerID, vehicleID, slot)
	w := performJSON(r, http.MethodPost, "/api/v1/bookings", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	require.Equal(t, entities.BookingPending, created.Status)
	require.Equal(t, customerID, created.CustomerID)
}

func TestBookingHandler_Create_Validation(t *testing.T) {
	r := bookingRouter(&bookingRepoStub{}, &vehicleRepoStub{}, nil)

	t.Run("vehicle id not a uuid", func(t *testing.T) {
		body := fmt.Sprintf(`{"customerId":%q,"vehicleId":"garage-3","scheduledAt":%q}`,
			uuid.New(), time.Now().Add(time.Hour).UTC().Format(time.RFC3339))
		w := performJSON(r, http.MethodPost, "/api/v1/bookings", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("slot in the past", func(t *testing.T) {
		body := fmt.Sprintf(`{"customerId":%q,"vehicleId":%q,"scheduledAt":%q}`,
			uuid.New(), uuid.New(), time.Now().Add(-time.Hour).UTC().Format(time.RFC3339))
		w := performJSON(r, http.MethodPost, "/api/v1/bookings", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_Get(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		r := bookingRouter(&bookingRepoStub{}, &vehicleRepoStub{}, nil)
		w := performJSON(r, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		r := bookingRouter(&bookingRepoStub{}, &vehicleRepoStub{}, nil)
		w := performJSON(r, http.MethodGet, "/api/v1/bookings/tomorrow", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_List_BadDay(t *testing.T) {
	r := bookingRouter(&bookingRepoStub{}, &vehicleRepoStub{}, nil)
	w := performJSON(r, http.MethodGet, "/api/v1/bookings?day=28-08-2026", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	id := uuid.New()
	bookings := &bookingRepoStub{
		getByIDFn: func(context.Context, uuid.UUID) (*entities.Booking, error) {
			return &entities.Booking{ID: id, CustomerID: uuid.New(), Status: entities.BookingPending}, nil
		},
	}
	r := bookingRouter(bookings, &vehicleRepoStub{}, &notificationRepoStub{})

	t.Run("confirm", func(t *testing.T) {
		w := performJSON(r, http.MethodPut, "/api/v1/bookings/"+id.String()+"/status", `{"status":"CONFIRMED"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "CONFIRMED")
	})

	t.Run("illegal jump", func(t *testing.T) {
		w := performJSON(r, http.MethodPut, "/api/v1/bookings/"+id.String()+"/status", `{"status":"COMPLETED"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
