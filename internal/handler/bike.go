package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Gladwin-7/bike-rental-system/internal/middleware"
	"github.com/Gladwin-7/bike-rental-system/internal/repository"
)

// BikeHandler serves the inventory endpoints: the public listings and
// the admin add/delete operations. Deletion runs its rental check and
// the delete inside one transaction so a rental created in between
// cannot orphan the check.
type BikeHandler struct {
	Bikes   *repository.BikeRepo
	Rentals *repository.RentalRepo
	Cache   *middleware.Cache
}

func NewBikeHandler(bikes *repository.BikeRepo, rentals *repository.RentalRepo, cache *middleware.Cache) *BikeHandler {
	if bikes == nil || rentals == nil {
		panic("nil repository passed to NewBikeHandler")
	}
	return &BikeHandler{Bikes: bikes, Rentals: rentals, Cache: cache}
}

type addBikeReq struct {
	RegistrationNumber string  `json:"registration_number" validate:"required"`
	Model              string  `json:"model" validate:"required"`
	Type               string  `json:"type" validate:"required"`
	PricePerHour       float64 `json:"price_per_hour" validate:"required,gt=0"`
}

// GetBikes handles GET /get-bikes: bikes currently available to rent.
func (h *BikeHandler) GetBikes(c echo.Context) error {
	bikes, err := h.Bikes.ListAvailable(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch bikes")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": bikes})
}

// GetAllBikes handles GET /get-all-bikes: the full fleet including
// status, for the admin dashboard.
func (h *BikeHandler) GetAllBikes(c echo.Context) error {
	bikes, err := h.Bikes.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch bikes")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": bikes})
}

// AddBike handles POST /add-bike. Every field is required and the
// hourly price must be positive; a duplicate registration number is
// reported as a 400 rather than surfacing the database error.
func (h *BikeHandler) AddBike(c echo.Context) error {
	var req addBikeReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}

	ctx := c.Request().Context()
	if _, err := h.Bikes.Create(ctx, req.RegistrationNumber, req.Model, req.Type, req.PricePerHour); err != nil {
		if err == repository.ErrDuplicateRegistration {
			return fail(c, http.StatusBadRequest, "Registration number already registered")
		}
		return fail(c, http.StatusInternalServerError, "Failed to add bike")
	}
	h.Cache.Invalidate(ctx)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Bike added successfully"})
}

// DeleteBike handles DELETE /delete-bike/:bikeId. The rental existence
// check and the delete share one transaction.
func (h *BikeHandler) DeleteBike(c echo.Context) error {
	bikeID, err := strconv.ParseUint(c.Param("bikeId"), 10, 64)
	if err != nil || bikeID == 0 {
		return fail(c, http.StatusBadRequest, "invalid bike id")
	}

	ctx := c.Request().Context()
	tx, err := h.Bikes.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to delete bike")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	n, err := h.Rentals.CountByBikeTx(ctx, tx, bikeID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to delete bike")
	}
	if n > 0 {
		return fail(c, http.StatusBadRequest, "Cannot delete bike with active rentals")
	}
	if err := h.Bikes.DeleteTx(ctx, tx, bikeID); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to delete bike")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to delete bike")
	}
	committed = true
	h.Cache.Invalidate(ctx)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Bike deleted successfully"})
}
