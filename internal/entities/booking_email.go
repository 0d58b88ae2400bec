package entities

type BookingEmailData struct {
	CustomerName   string
	BookingCode    string
	VehicleName    string
	Color          string
	PlateNumber    string
	PickupLocation string
	StartDate      string
	EndDate        string
	TotalPrice     string
	Status         string
	CurrentYear    int
}
