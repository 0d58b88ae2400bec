package entities

// BookingRequest is a customer's reservation attempt for one variant.
type BookingRequest struct {
	VariantID       int    `json:"variant_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	LicenseNumber   string `json:"license_number"`
	PickupLocation  string `json:"pickup_location"`
	IdentityDocURL  string `json:"identity_document_ref,omitempty"`
}
