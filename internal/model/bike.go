package model

// Bike status values. A bike is Rented exactly while a rental row
// references it and Available otherwise.
const (
	BikeAvailable = "Available"
	BikeRented    = "Rented"
)

// Bike mirrors the `bikes` table. The json tags match the column names
// the frontend consumes. Status carries omitempty so that projections
// which do not select it (the available-bikes listing) serialize
// without the field.
//
// Fields:
//  ID                 – primary key identifier (bikes.bike_id).
//  RegistrationNumber – unique plate / registration number.
//  Model              – manufacturer model name.
//  Type               – free-form category (Standard, Electric, Scooter, ...).
//  PricePerHour       – positive hourly rate.
//  Status             – Available or Rented.
type Bike struct {
	ID                 uint64  `json:"bike_id"`
	RegistrationNumber string  `json:"registration_number"`
	Model              string  `json:"model"`
	Type               string  `json:"type"`
	PricePerHour       float64 `json:"price_per_hour"`
	Status             string  `json:"status,omitempty"`
}
