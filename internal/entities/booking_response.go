package entities

import "time"

type BookingResponse struct {
	ID             int       `json:"booking_id"`
	Code           string    `json:"booking_code"`
	VariantID      int       `json:"variant_id"`
	VehicleID      int       `json:"vehicle_id"`
	VehicleName    string    `json:"vehicle_name,omitempty"`
	Color          string    `json:"color,omitempty"`
	PlateNumber    string    `json:"plate_number,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  string    `json:"customer_phone"`
	LicenseNumber  string    `json:"license_number"`
	PickupLocation string    `json:"pickup_location"`
	IdentityDocURL string    `json:"identity_document_ref,omitempty"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	TotalPrice     float64   `json:"total_price"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Bookings []BookingResponse `json:"bookings"`
}

// BookingFilter narrows the admin listing. Zero values mean "any".
type BookingFilter struct {
	Status    string
	Date      string // YYYY-MM-DD, matches bookings whose range covers the day
	VehicleID int
}
