package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Gladwin-7/bike-rental-system/internal/config"
	"github.com/Gladwin-7/bike-rental-system/internal/middleware"
	"github.com/Gladwin-7/bike-rental-system/internal/repository"
)

func newBikeHandler(t *testing.T) (*BikeHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	h := &BikeHandler{
		Bikes:   repository.NewBikeRepo(db),
		Rentals: repository.NewRentalRepo(db),
		Cache:   middleware.NewCache(config.CacheConfig{}, nil),
	}
	return h, mock, db
}

func TestGetBikesOmitsStatus(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	cols := []string{"bike_id", "registration_number", "model", "type", "price_per_hour"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'Available'")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "KA-01-1234", "FZ-S", "Standard", 100.0).
			AddRow(2, "KA-02-9876", "Chetak", "Electric", 150.0))

	c, rec := newTestContext(t, http.MethodGet, "/get-bikes", "")
	if err := h.GetBikes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"bike_id":1`) || !strings.Contains(body, `"bike_id":2`) {
		t.Fatalf("expected both bikes in body: %s", body)
	}
	// The available listing does not select status; the field must be absent.
	if strings.Contains(body, `"status"`) {
		t.Fatalf("status must not appear in the available listing: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetAllBikesIncludesStatus(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	cols := []string{"bike_id", "registration_number", "model", "type", "price_per_hour", "status"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM bikes ORDER BY bike_id")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "KA-01-1234", "FZ-S", "Standard", 100.0, "Rented"))

	c, rec := newTestContext(t, http.MethodGet, "/get-all-bikes", "")
	if err := h.GetAllBikes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"Rented"`) {
		t.Fatalf("expected status in body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddBikeValidation(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	cases := []struct {
		name string
		body string
	}{
		{"missing registration", `{"model":"FZ-S","type":"Standard","price_per_hour":100}`},
		{"missing model", `{"registration_number":"KA-01-1234","type":"Standard","price_per_hour":100}`},
		{"missing type", `{"registration_number":"KA-01-1234","model":"FZ-S","price_per_hour":100}`},
		{"zero price", `{"registration_number":"KA-01-1234","model":"FZ-S","type":"Standard","price_per_hour":0}`},
		{"negative price", `{"registration_number":"KA-01-1234","model":"FZ-S","type":"Standard","price_per_hour":-5}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/add-bike", tc.body)
			if err := h.AddBike(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
		})
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestAddBikeSuccess(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bikes")).
		WithArgs("KA-01-1234", "FZ-S", "Standard", 100.0).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := newTestContext(t, http.MethodPost, "/add-bike",
		`{"registration_number":"KA-01-1234","model":"FZ-S","type":"Standard","price_per_hour":100}`)
	if err := h.AddBike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Bike added successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddBikeDuplicateRegistration(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bikes")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'KA-01-1234'"))

	c, rec := newTestContext(t, http.MethodPost, "/add-bike",
		`{"registration_number":"KA-01-1234","model":"FZ-S","type":"Standard","price_per_hour":100}`)
	if err := h.AddBike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already registered") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBikeBlockedByRental(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rentals WHERE bike_id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodDelete, "/delete-bike/3", "")
	c.SetPath("/delete-bike/:bikeId")
	c.SetParamNames("bikeId")
	c.SetParamValues("3")
	if err := h.DeleteBike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cannot delete bike with active rentals") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBikeSuccess(t *testing.T) {
	h, mock, db := newBikeHandler(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rentals WHERE bike_id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bikes WHERE bike_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodDelete, "/delete-bike/3", "")
	c.SetPath("/delete-bike/:bikeId")
	c.SetParamNames("bikeId")
	c.SetParamValues("3")
	if err := h.DeleteBike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
