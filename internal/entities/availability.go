package entities

// VariantAvailability is the per-unit answer for a requested date range.
type VariantAvailability struct {
	VariantID   int    `json:"variant_id"`
	Color       string `json:"color"`
	PlateNumber string `json:"plate_number"`
	Free        bool   `json:"free"`
}

type AvailabilityResponse struct {
	VehicleID int                   `json:"vehicle_id"`
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Variants  []VariantAvailability `json:"variants"`
}

// ColorGroupAvailability aggregates the variants of one normalized color.
// Display-only; allocation always targets a concrete variant.
type ColorGroupAvailability struct {
	Color       string `json:"color"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	Rented      int    `json:"rented"`
	Maintenance int    `json:"maintenance"`
}

type ColorGroupResponse struct {
	VehicleID int                      `json:"vehicle_id"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Groups    []ColorGroupAvailability `json:"groups"`
}

type BookedDatesResponse struct {
	VariantID int      `json:"variant_id"`
	Dates     []string `json:"dates"`
}
