package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
)

// ColorGroup is the set of a vehicle's variants sharing a normalized color
// label. Derived for presentation only; allocation always targets one
// concrete variant.
type ColorGroup struct {
	Color    string // first-seen original casing, for display
	Variants []db.Variant
}

// GroupByColor groups variants by color, comparing labels case-insensitively
// and ignoring surrounding whitespace. Group order follows first appearance.
func GroupByColor(variants []db.Variant) []ColorGroup {
	var groups []ColorGroup
	index := make(map[string]int)

	for _, v := range variants {
		key := strings.ToLower(strings.TrimSpace(v.Color))
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ColorGroup{Color: strings.TrimSpace(v.Color)})
		}
		groups[i].Variants = append(groups[i].Variants, v)
	}
	return groups
}

// InventoryService serves fleet reads. Vehicle and variant writes happen in
// the external admin surface; this side only consumes them.
type InventoryService struct {
	vehicles repository.VehicleRepository
}

func NewInventoryService(vehicles repository.VehicleRepository) *InventoryService {
	return &InventoryService{vehicles: vehicles}
}

func (s *InventoryService) ListVehicles(ctx context.Context) ([]entities.VehicleResponse, error) {
	vehicles, err := s.vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]entities.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, vehicleToResponse(&v, nil))
	}
	return resp, nil
}

func (s *InventoryService) GetVehicle(ctx context.Context, id int) (*entities.VehicleResponse, error) {
	vehicle, err := s.vehicles.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("vehicle %d not found", id))
		}
		return nil, err
	}
	variants, err := s.vehicles.ListVariantsByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := vehicleToResponse(vehicle, variants)
	return &resp, nil
}

func vehicleToResponse(v *db.Vehicle, variants []db.Variant) entities.VehicleResponse {
	resp := entities.VehicleResponse{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Seats:       v.Seats,
		Category:    v.Category,
		PricePerDay: v.PricePerDay,
		Description: v.Description,
		ImageURL:    v.ImageURL,
	}
	for _, variant := range variants {
		resp.Variants = append(resp.Variants, entities.VariantResponse{
			ID:          variant.ID,
			Color:       variant.Color,
			PlateNumber: variant.PlateNumber,
			PricePerDay: variant.DailyRate(v),
			Available:   variant.Available,
			ImageURL:    variant.ImageURL,
		})
	}
	return resp
}
