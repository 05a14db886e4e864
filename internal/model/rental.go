package model

import "time"

// Rental records an active rental in the `rentals` table. Rows are
// ephemeral: they are created when a bike is rented and deleted when it
// is returned, so existence implies the rental is active.
//
// Fields:
//  ID            – primary key identifier (rentals.rental_id).
//  CustomerID    – customer who rented the bike.
//  BikeID        – bike being rented.
//  StartDatetime – rental start, recorded in UTC.
//  EndDatetime   – start plus the booked hours.
//  TotalPrice    – price per hour at rental time multiplied by hours;
//                  never recomputed after creation.
type Rental struct {
	ID            uint64    `json:"rental_id"`
	CustomerID    uint64    `json:"customer_id"`
	BikeID        uint64    `json:"bike_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	TotalPrice    float64   `json:"total_price"`
}
