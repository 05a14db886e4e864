package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Gladwin-7/bike-rental-system/internal/metrics"
	"github.com/Gladwin-7/bike-rental-system/internal/middleware"
	"github.com/Gladwin-7/bike-rental-system/internal/model"
	"github.com/Gladwin-7/bike-rental-system/internal/queue"
	"github.com/Gladwin-7/bike-rental-system/internal/repository"
	queue_publisher "github.com/Gladwin-7/bike-rental-system/internal/service"
)

// RentalHandler owns the rent/return transactions and the rental
// listings. Renting and returning are the only multi-step state
// changes in the system; both run inside a single database transaction
// so no partial state (rental inserted but status not flipped) is ever
// observable. The bike row lock taken during rent guarantees that of
// two concurrent rent requests for one bike exactly one succeeds.
type RentalHandler struct {
	Bikes   *repository.BikeRepo
	Rentals *repository.RentalRepo
	Cache   *middleware.Cache
	// Publish sends a rental event to the broker after a commit.
	// Failures are ignored; the event stream is best-effort.
	Publish func(context.Context, queue.RentalEvent) error
}

func NewRentalHandler(bikes *repository.BikeRepo, rentals *repository.RentalRepo, cache *middleware.Cache) *RentalHandler {
	if bikes == nil || rentals == nil {
		panic("nil repository passed to NewRentalHandler")
	}
	return &RentalHandler{
		Bikes:   bikes,
		Rentals: rentals,
		Cache:   cache,
		Publish: queue_publisher.PublishRentalEvent,
	}
}

type rentReq struct {
	CustomerID uint64  `json:"customerId" validate:"required"`
	BikeID     uint64  `json:"bikeId" validate:"required"`
	// A year of hours is already absurd for a rental; the bound also
	// keeps hours*time.Hour far away from the time.Duration range.
	Hours float64 `json:"hours" validate:"required,gt=0,lte=8760"`
}

type returnReq struct {
	RentalID uint64 `json:"rentalId"`
	BikeID   uint64 `json:"bikeId"`
}

// RentBike handles POST /rent-bike. Protocol: lock the bike row
// filtered to status Available, compute the total from the locked
// price, insert the rental, flip the status to Rented, commit. Any
// failing step rolls back the whole transaction.
func (h *RentalHandler) RentBike(c echo.Context) error {
	var req rentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input data")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input data")
	}

	ctx := c.Request().Context()
	tx, err := h.Rentals.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to rent bike")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	pricePerHour, err := h.Bikes.LockAvailableTx(ctx, tx, req.BikeID)
	if err != nil {
		if err == repository.ErrBikeUnavailable {
			return fail(c, http.StatusBadRequest, "Bike not available")
		}
		return fail(c, http.StatusInternalServerError, "Failed to rent bike")
	}

	total := pricePerHour * req.Hours
	start := time.Now().UTC()
	end := start.Add(time.Duration(req.Hours * float64(time.Hour)))
	rental := &model.Rental{
		CustomerID:    req.CustomerID,
		BikeID:        req.BikeID,
		StartDatetime: start,
		EndDatetime:   end,
		TotalPrice:    total,
	}
	if err := h.Rentals.CreateTx(ctx, tx, rental); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to rent bike")
	}
	if err := h.Bikes.UpdateStatusTx(ctx, tx, req.BikeID, model.BikeRented); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to rent bike")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to rent bike")
	}
	committed = true
	metrics.RentalsTotal.Inc()
	h.Cache.Invalidate(ctx)

	if h.Publish != nil {
		ev := queue.RentalEvent{
			Action:        queue.ActionRented,
			RentalID:      rental.ID,
			CustomerID:    rental.CustomerID,
			BikeID:        rental.BikeID,
			TotalPrice:    rental.TotalPrice,
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
			OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Publish(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Bike rented successfully",
		"rentalId":   rental.ID,
		"totalPrice": total,
	})
}

// ReturnBike handles POST /return-bike. The existence check for the
// (rentalId, bikeId) pair, the rental delete and the status flip share
// one transaction, so a return cannot race with another return of the
// same rental.
func (h *RentalHandler) ReturnBike(c echo.Context) error {
	var req returnReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Rental ID and Bike ID are required")
	}
	if req.RentalID == 0 || req.BikeID == 0 {
		return fail(c, http.StatusBadRequest, "Rental ID and Bike ID are required")
	}

	ctx := c.Request().Context()
	tx, err := h.Rentals.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to return bike")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Rentals.ExistsForBikeTx(ctx, tx, req.RentalID, req.BikeID); err != nil {
		if err == repository.ErrRentalNotFound {
			return fail(c, http.StatusNotFound, "Rental not found")
		}
		return fail(c, http.StatusInternalServerError, "Failed to return bike")
	}
	if err := h.Rentals.DeleteTx(ctx, tx, req.RentalID); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to return bike")
	}
	if err := h.Bikes.UpdateStatusTx(ctx, tx, req.BikeID, model.BikeAvailable); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to return bike")
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to return bike")
	}
	committed = true
	metrics.ReturnsTotal.Inc()
	h.Cache.Invalidate(ctx)

	if h.Publish != nil {
		ev := queue.RentalEvent{
			Action:     queue.ActionReturned,
			RentalID:   req.RentalID,
			BikeID:     req.BikeID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Publish(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Bike returned successfully"})
}

// CustomerRentals handles GET /customer-rentals/:customerId.
func (h *RentalHandler) CustomerRentals(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 64)
	if err != nil || customerID == 0 {
		return fail(c, http.StatusBadRequest, "invalid customer id")
	}
	rentals, err := h.Rentals.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch rentals")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rentals})
}

// RentedBikes handles GET /rented-bikes for the admin view.
func (h *RentalHandler) RentedBikes(c echo.Context) error {
	rentals, err := h.Rentals.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch rentals")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rentals})
}
