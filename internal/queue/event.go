// Package queue defines message payloads exchanged over the message broker.
package queue

// Rental event actions.
const (
	ActionRented   = "rented"
	ActionReturned = "returned"
)

// RentalEvent is published after a rental transaction commits. It
// carries enough information for downstream consumers to log or
// trigger analytics without querying the primary database. For
// returns, the price and period fields are zero values.
type RentalEvent struct {
	Action        string  `json:"action"`
	RentalID      uint64  `json:"rental_id"`
	CustomerID    uint64  `json:"customer_id,omitempty"`
	BikeID        uint64  `json:"bike_id"`
	TotalPrice    float64 `json:"total_price,omitempty"`
	StartDatetime string  `json:"start_datetime,omitempty"`
	EndDatetime   string  `json:"end_datetime,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}
