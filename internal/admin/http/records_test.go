package http_test

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
)

func TestCustomerEndpoints(t *testing.T) {
	env := newEnv(t)
	token := env.login(t, "owner@example.com")

	rec := env.do(t, http.MethodPost, "/v1/customers", token, adminsdk.CreateCustomerRequest{Email: "bad"})
	e := requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
	require.Equal(t, "name is required", e.Fields["name"])
	require.Equal(t, "email must be a valid email", e.Fields["email"])

	rec = env.do(t, http.MethodPost, "/v1/customers", token, adminsdk.CreateCustomerRequest{Name: "Ada", Email: "ada@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ada adminsdk.Customer
	decode(t, rec, &ada)
	require.NotEmpty(t, ada.ID)

	rec = env.do(t, http.MethodPost, "/v1/customers", token, adminsdk.CreateCustomerRequest{Name: "Bob"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("get", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/customers/"+ada.ID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got adminsdk.Customer
		decode(t, rec, &got)
		require.Equal(t, "ada@example.com", got.Email)

		rec = env.do(t, http.MethodGet, "/v1/customers/missing", token, nil)
		requireAPIError(t, rec, http.StatusNotFound, adminsdk.ErrorCodeNotFound)
	})

	t.Run("patch", func(t *testing.T) {
		phone := "555-0100"
		rec := env.do(t, http.MethodPatch, "/v1/customers/"+ada.ID, token, adminsdk.UpdateCustomerRequest{Phone: &phone})
		require.Equal(t, http.StatusOK, rec.Code)
		var got adminsdk.Customer
		decode(t, rec, &got)
		require.Equal(t, "Ada", got.Name)
		require.Equal(t, phone, got.Phone)

		blank := " "
		rec = env.do(t, http.MethodPatch, "/v1/customers/"+ada.ID, token, adminsdk.UpdateCustomerRequest{Name: &blank})
		requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
	})

	t.Run("list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/customers?order=name&asc=true", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list adminsdk.ListCustomersResponse
		decode(t, rec, &list)
		require.Len(t, list.Customers, 2)
		require.Equal(t, "Ada", list.Customers[0].Name)
		require.Equal(t, "Bob", list.Customers[1].Name)

		rec = env.do(t, http.MethodGet, "/v1/customers?search=bo", token, nil)
		list = adminsdk.ListCustomersResponse{}
		decode(t, rec, &list)
		require.Len(t, list.Customers, 1)

		for _, q := range []string{"order=email", "asc=maybe", "limit=0", "limit=201", "limit=x"} {
			rec := env.do(t, http.MethodGet, "/v1/customers?"+q, token, nil)
			requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
		}
	})
}

func TestBookingEndpoints(t *testing.T) {
	env := newEnv(t)
	ownerTok := env.login(t, "owner@example.com")

	rec := env.do(t, http.MethodPost, "/v1/customers", ownerTok, adminsdk.CreateCustomerRequest{Name: "Ada"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ada adminsdk.Customer
	decode(t, rec, &ada)

	checkIn := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(72 * time.Hour)

	rec = env.do(t, http.MethodPost, "/v1/bookings", ownerTok, adminsdk.CreateBookingRequest{
		CustomerID:     ada.ID,
		HotelID:        "2",
		RoomNumber:     "204",
		CheckIn:        checkIn,
		CheckOut:       &checkOut,
		RoomCharges:    45000,
		LaundryCharges: 1250,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var other adminsdk.Booking
	decode(t, rec, &other)
	require.Equal(t, int64(46250), other.TotalAmount)
	require.Equal(t, adminsdk.BookingStatusActive, other.Status)

	t.Run("validation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/bookings", ownerTok, adminsdk.CreateBookingRequest{
			CustomerID: ada.ID, HotelID: "2", CheckIn: checkIn, RoomCharges: -1, Status: "lost",
		})
		e := requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
		require.Contains(t, e.Fields, "roomCharges")
		require.Contains(t, e.Fields, "status")

		early := checkIn.Add(-time.Hour)
		rec = env.do(t, http.MethodPost, "/v1/bookings", ownerTok, adminsdk.CreateBookingRequest{
			CustomerID: ada.ID, HotelID: "2", CheckIn: checkIn, CheckOut: &early,
		})
		requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)

		rec = env.do(t, http.MethodPost, "/v1/bookings", ownerTok, adminsdk.CreateBookingRequest{
			CustomerID: ada.ID, HotelID: "2", CheckIn: checkIn, RoomCharges: math.MaxInt64, OtherCharges: 1,
		})
		requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)

		rec = env.do(t, http.MethodPost, "/v1/bookings", ownerTok, adminsdk.CreateBookingRequest{
			CustomerID: "ghost", HotelID: "2", CheckIn: checkIn,
		})
		e = requireAPIError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeValidation)
		require.Contains(t, e.Fields, "customerId")
	})

	t.Run("manager is confined to their hotel", func(t *testing.T) {
		token := env.login(t, "manager@example.com")

		rec := env.do(t, http.MethodPost, "/v1/bookings", token, adminsdk.CreateBookingRequest{
			CustomerID: ada.ID, CheckIn: checkIn, RoomCharges: 100,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var mine adminsdk.Booking
		decode(t, rec, &mine)
		require.Equal(t, "1", mine.HotelID)

		rec = env.do(t, http.MethodPost, "/v1/bookings", token, adminsdk.CreateBookingRequest{
			CustomerID: ada.ID, HotelID: "2", CheckIn: checkIn,
		})
		requireAPIError(t, rec, http.StatusForbidden, adminsdk.ErrorCodeForbiddenHotel)

		rec = env.do(t, http.MethodGet, "/v1/bookings/"+other.ID, token, nil)
		requireAPIError(t, rec, http.StatusForbidden, adminsdk.ErrorCodeForbiddenHotel)

		rec = env.do(t, http.MethodGet, "/v1/customers/"+ada.ID+"/bookings", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list adminsdk.ListBookingsResponse
		decode(t, rec, &list)
		require.Len(t, list.Bookings, 1)
		require.Equal(t, mine.ID, list.Bookings[0].ID)
	})

	t.Run("owner sees every hotel", func(t *testing.T) {
		token := env.login(t, "owner@example.com")

		rec := env.do(t, http.MethodGet, "/v1/customers/"+ada.ID+"/bookings", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list adminsdk.ListBookingsResponse
		decode(t, rec, &list)
		require.Len(t, list.Bookings, 2)

		rec = env.do(t, http.MethodGet, "/v1/customers/"+ada.ID+"/bookings?status=cancelled", token, nil)
		list = adminsdk.ListBookingsResponse{}
		decode(t, rec, &list)
		require.Empty(t, list.Bookings)

		rec = env.do(t, http.MethodGet, "/v1/customers/missing/bookings", token, nil)
		requireAPIError(t, rec, http.StatusNotFound, adminsdk.ErrorCodeNotFound)

		rec = env.do(t, http.MethodGet, "/v1/bookings/missing", token, nil)
		requireAPIError(t, rec, http.StatusNotFound, adminsdk.ErrorCodeNotFound)
	})
}
