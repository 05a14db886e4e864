// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors: a rent attempt on a rented bike surfaces
// ErrBikeUnavailable, a delete attempt on a bike with rentals surfaces
// ErrBikeHasRentals, and so on. Handlers translate them into the
// appropriate HTTP status.
package repository

import "errors"

// ErrBikeUnavailable is returned when the bike targeted by a rent
// request does not exist or is not in the Available status. Handlers
// should translate this into an HTTP 400 response.
var ErrBikeUnavailable = errors.New("bike not available")

// ErrRentalNotFound is returned when no rental row matches the
// (rentalId, bikeId) pair supplied to a return request. Handlers
// should translate this into an HTTP 404 response.
var ErrRentalNotFound = errors.New("rental not found")

// ErrBikeHasRentals is returned when a bike cannot be deleted because
// a rental row still references it.
var ErrBikeHasRentals = errors.New("bike has active rentals")

// ErrDuplicateRegistration is returned when inserting a bike whose
// registration number is already present.
var ErrDuplicateRegistration = errors.New("registration number already exists")

// ErrCustomerExists is returned when registering a customer whose
// mobile number or email is already taken.
var ErrCustomerExists = errors.New("mobile or email already registered")
