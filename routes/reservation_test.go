package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// buildTestApp wires the public routes without auth middleware; the cases
// below only exercise input validation, which fails before any storage call.
func buildTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/room/{id:uint}", CreateReservation)
		reservations.Post("/room/{id:uint}/validate", ValidateReservationAvailability)
	}
	calendar := app.Party("/api/calendar")
	{
		calendar.Get("/property/{id:uint}", GetPropertyCalendar)
	}
	overrides := app.Party("/api/overrides")
	{
		overrides.Post("/block", BlockRoomDates)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func doJSON(t *testing.T, app *iris.Application, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestCreateReservationRequiresDates(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/reservations/room/1", `{"guestName":"Li Wei"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing dates, got %d", resp.Code)
	}
}

func TestCreateReservationRejectsBackwardsDates(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/reservations/room/1",
		`{"checkInDate":"2024-01-12T00:00:00Z","checkOutDate":"2024-01-10T00:00:00Z"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for checkOut before checkIn, got %d", resp.Code)
	}
}

func TestValidateEndpointRejectsEqualDates(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/reservations/room/1/validate",
		`{"checkInDate":"2024-01-12T00:00:00Z","checkOutDate":"2024-01-12T00:00:00Z"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero-night interval, got %d", resp.Code)
	}
}

func TestCalendarRequiresDateRange(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/calendar/property/1", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing range, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/calendar/property/1?startDate=2024-06-01&endDate=junk", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed endDate, got %d", resp.Code)
	}
}

func TestBlockRoomRejectsBackwardsRange(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/overrides/block",
		`{"roomID":1,"startDate":"2024-02-04T00:00:00Z","endDate":"2024-02-01T00:00:00Z","reason":"maintenance"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for backwards range, got %d", resp.Code)
	}
}
