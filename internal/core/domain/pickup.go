package domain

import "time"

// PickupRequest links a customer, a launderer, and a requested date.
// Requests are insert-only: there is no status lifecycle in this system.
type PickupRequest struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	PickupDate  time.Time `json:"pickup_date" bson:"pickup_date"`
	UserID      string    `json:"user_id" bson:"user_id"`
	LaundererID string    `json:"launderer_id" bson:"launderer_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// PickupView is a dashboard row: a pickup with the referenced user and
// launderer names resolved.
type PickupView struct {
	ID            string    `json:"id"`
	PickupDate    time.Time `json:"pickup_date"`
	UserName      string    `json:"user_name"`
	LaundererName string    `json:"launderer_name"`
}
