package models

import "strings"

// VehicleFilter is the set of optional predicates a catalog search accepts.
// List-valued fields are OR-within-field; separate fields are AND-ed together.
type VehicleFilter struct {
	Search        string         `json:"search,omitempty"`
	Makes         []string       `json:"makes,omitempty"`
	Models        []string       `json:"models,omitempty"`
	PriceMin      float64        `json:"priceMin,omitempty"`
	PriceMax      float64        `json:"priceMax,omitempty"`
	YearMin       int            `json:"yearMin,omitempty"`
	YearMax       int            `json:"yearMax,omitempty"`
	MileageMin    int            `json:"mileageMin,omitempty"`
	MileageMax    int            `json:"mileageMax,omitempty"`
	HorsepowerMin int            `json:"horsepowerMin,omitempty"`
	PowerKWMin    int            `json:"powerMin,omitempty"`
	Colors        []string       `json:"colors,omitempty"`
	FuelTypes     []FuelType     `json:"fuelTypes,omitempty"`
	Transmissions []Transmission `json:"transmissions,omitempty"`
	BodyTypes     []BodyType     `json:"bodyTypes,omitempty"`
	IsLuxury      *bool          `json:"isLuxury,omitempty"`
	Location      string         `json:"location,omitempty"`
}

// Matches reports whether a vehicle satisfies every non-empty predicate of
// the filter. This is the in-memory twin of the SQL predicates the inventory
// adapter builds; the feed adapter filters exclusively through it.
func (f *VehicleFilter) Matches(v *Vehicle) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(v.Make), q) &&
			!strings.Contains(strings.ToLower(v.Model), q) {
			return false
		}
	}
	if len(f.Makes) > 0 && !containsFold(f.Makes, v.Make) {
		return false
	}
	if len(f.Models) > 0 && !containsFold(f.Models, v.Model) {
		return false
	}
	if f.PriceMin > 0 && v.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && v.Price > f.PriceMax {
		return false
	}
	if f.YearMin > 0 && v.Year < f.YearMin {
		return false
	}
	if f.YearMax > 0 && v.Year > f.YearMax {
		return false
	}
	if f.MileageMin > 0 && v.Mileage < f.MileageMin {
		return false
	}
	if f.MileageMax > 0 && v.Mileage > f.MileageMax {
		return false
	}
	if f.HorsepowerMin > 0 && v.PowerCV < f.HorsepowerMin {
		return false
	}
	if f.PowerKWMin > 0 && v.PowerKW < f.PowerKWMin {
		return false
	}
	if len(f.Colors) > 0 && !containsFold(f.Colors, v.Color) {
		return false
	}
	if len(f.FuelTypes) > 0 && !containsFuel(f.FuelTypes, v.FuelType) {
		return false
	}
	if len(f.Transmissions) > 0 && !containsTransmission(f.Transmissions, v.Transmission) {
		return false
	}
	if len(f.BodyTypes) > 0 && !containsBody(f.BodyTypes, v.BodyType) {
		return false
	}
	if f.IsLuxury != nil && v.IsLuxury != *f.IsLuxury {
		return false
	}
	if f.Location != "" {
		q := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(v.Location.City), q) &&
			!strings.Contains(strings.ToLower(v.Location.Region), q) &&
			!strings.Contains(strings.ToLower(v.Location.Address), q) {
			return false
		}
	}
	return true
}

func containsFold(list []string, val string) bool {
	for _, s := range list {
		if strings.EqualFold(s, val) {
			return true
		}
	}
	return false
}

func containsFuel(list []FuelType, val FuelType) bool {
	for _, s := range list {
		if s == val {
			return true
		}
	}
	return false
}

func containsTransmission(list []Transmission, val Transmission) bool {
	for _, s := range list {
		if s == val {
			return true
		}
	}
	return false
}

func containsBody(list []BodyType, val BodyType) bool {
	for _, s := range list {
		if s == val {
			return true
		}
	}
	return false
}

// SortDescriptor names the field and direction a result set is ordered by
type SortDescriptor struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// SearchResult is one page of a filtered, sorted catalog search
type SearchResult struct {
	Vehicles []Vehicle      `json:"vehicles"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	HasMore  bool           `json:"hasMore"`
	Filters  VehicleFilter  `json:"filters"`
	Sort     SortDescriptor `json:"sort"`
}

// Paginate slices a fully filtered and sorted vehicle list into the requested
// 1-based page, carrying the totals every caller needs. Cross-partition result
// sets cannot be paginated upstream, so every adapter funnels through this.
func Paginate(vehicles []Vehicle, filter VehicleFilter, page, pageSize int) SearchResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}
	total := len(vehicles)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageSlice := vehicles[start:end]
	if len(pageSlice) == 0 {
		pageSlice = []Vehicle{}
	}
	return SearchResult{
		Vehicles: pageSlice,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < total,
		Filters:  filter,
		Sort:     SortDescriptor{Field: "createdAt", Direction: "desc"},
	}
}
