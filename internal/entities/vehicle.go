package entities

type VariantResponse struct {
	ID          int     `json:"id"`
	Color       string  `json:"color"`
	PlateNumber string  `json:"plate_number"`
	PricePerDay float64 `json:"price_per_day"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type VehicleResponse struct {
	ID          int               `json:"id"`
	Make        string            `json:"make"`
	Model       string            `json:"model"`
	Year        int               `json:"year"`
	Seats       int               `json:"seats"`
	Category    string            `json:"category"`
	PricePerDay float64           `json:"price_per_day"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Variants    []VariantResponse `json:"variants,omitempty"`
}
