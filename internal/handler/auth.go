package handler

import (
	"context"      // context with cancellation for DB calls
	"database/sql" // sentinel errors from the repository layer
	"net/http"     // HTTP status codes and primitives
	"strings"      // string normalization
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/Gladwin-7/bike-rental-system/internal/config"     // app configuration
	"github.com/Gladwin-7/bike-rental-system/internal/repository" // DB repositories
	"github.com/Gladwin-7/bike-rental-system/internal/utils"      // password hashing helpers
)

// AuthHandler bundles dependencies for the login and registration
// endpoints. Customers log in by email, admins by username; both are
// verified against bcrypt hashes.
type AuthHandler struct {
	Cfg       config.Config
	Customers *repository.CustomerRepo
	Admins    *repository.AdminRepo
}

func NewAuthHandler(cfg config.Config, c *repository.CustomerRepo, a *repository.AdminRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: c, Admins: a}
}

// ----- DTOs -----

type loginReq struct {
	UserType   string `json:"userType"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials for either user type and returns the
// identity the dashboards need. Lookup misses and hash mismatches
// produce the same 401 so the response does not reveal which part was
// wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Identifier and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch req.UserType {
	case "customer":
		cust, err := h.Customers.GetByEmail(ctx, req.Identifier)
		if err != nil {
			if err == sql.ErrNoRows {
				return fail(c, http.StatusUnauthorized, "Invalid email or password")
			}
			return fail(c, http.StatusInternalServerError, "Server error")
		}
		if !utils.VerifyPassword(cust.PasswordHash, req.Password) {
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":      true,
			"message":      "Customer login successful!",
			"userType":     "customer",
			"customerId":   cust.ID,
			"customerName": cust.Name,
		})
	case "admin":
		adm, err := h.Admins.GetByUsername(ctx, req.Identifier)
		if err != nil {
			if err == sql.ErrNoRows {
				return fail(c, http.StatusUnauthorized, "Invalid username or password")
			}
			return fail(c, http.StatusInternalServerError, "Server error")
		}
		if !utils.VerifyPassword(adm.PasswordHash, req.Password) {
			return fail(c, http.StatusUnauthorized, "Invalid username or password")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "Admin login successful!",
			"userType": "admin",
			"adminId":  adm.ID,
		})
	default:
		return fail(c, http.StatusBadRequest, "Invalid user type")
	}
}

// Register creates a customer account. The password is bcrypt-hashed
// inside the repository; duplicate mobile or email surfaces as a 400.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Customers.Create(ctx, req.Name, req.Mobile, req.Email, req.Address, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrCustomerExists {
			return fail(c, http.StatusBadRequest, "Mobile number or email already registered")
		}
		return fail(c, http.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Registration successful. Please login.",
	})
}
