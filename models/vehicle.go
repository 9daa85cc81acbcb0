package models

import "time"

// FuelType is the internal fuel vocabulary. Upstream values are translated
// into this closed set by the catalog mappers.
type FuelType string

// FuelType values
const (
	FuelPetrol        FuelType = "petrol"
	FuelDiesel        FuelType = "diesel"
	FuelElectric      FuelType = "electric"
	FuelHybrid        FuelType = "hybrid"
	FuelPluginHybrid  FuelType = "plugin_hybrid"
	FuelLPG           FuelType = "lpg"
	FuelCNG           FuelType = "cng"
	FuelHydrogen      FuelType = "hydrogen"
	FuelOther         FuelType = "other"
)

// AllFuelTypes lists every member of the closed fuel enumeration
var AllFuelTypes = []FuelType{
	FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid,
	FuelPluginHybrid, FuelLPG, FuelCNG, FuelHydrogen, FuelOther,
}

// Transmission is the internal transmission vocabulary
type Transmission string

// Transmission values
const (
	TransmissionManual        Transmission = "manual"
	TransmissionAutomatic     Transmission = "automatic"
	TransmissionSemiAutomatic Transmission = "semi_automatic"
	TransmissionCVT           Transmission = "cvt"
)

// AllTransmissions lists every member of the closed transmission enumeration
var AllTransmissions = []Transmission{
	TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic, TransmissionCVT,
}

// BodyType is the internal body-type vocabulary
type BodyType string

// BodyType values
const (
	BodySedan       BodyType = "sedan"
	BodyHatchback   BodyType = "hatchback"
	BodyWagon       BodyType = "wagon"
	BodySUV         BodyType = "suv"
	BodyCoupe       BodyType = "coupe"
	BodyConvertible BodyType = "convertible"
	BodyVan         BodyType = "van"
	BodyPickup      BodyType = "pickup"
	BodyMinivan     BodyType = "minivan"
	BodyOther       BodyType = "other"
)

// AllBodyTypes lists every member of the closed body-type enumeration
var AllBodyTypes = []BodyType{
	BodySedan, BodyHatchback, BodyWagon, BodySUV, BodyCoupe,
	BodyConvertible, BodyVan, BodyPickup, BodyMinivan, BodyOther,
}

// Condition describes the commercial condition of a vehicle
type Condition string

// Condition values
const (
	ConditionUsed    Condition = "used"
	ConditionNew     Condition = "new"
	ConditionDemo    Condition = "demo"
	ConditionClassic Condition = "classic"
	ConditionDamaged Condition = "damaged"
)

// Availability describes whether a vehicle can still be sold
type Availability string

// Availability values
const (
	AvailabilityAvailable Availability = "available"
	AvailabilityReserved  Availability = "reserved"
	AvailabilitySold      Availability = "sold"
)

// VehicleImage is one entry of a vehicle's ordered image list. At most one
// image per vehicle carries IsPrimary.
type VehicleImage struct {
	URL       string `json:"url" db:"url"`
	AltText   string `json:"altText"`
	IsPrimary bool   `json:"isPrimary"`
	Order     int    `json:"order"`
}

// Location holds the physical location of a vehicle or dealer
type Location struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Dealer holds the contact block attached to every vehicle
type Dealer struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Location Location `json:"location"`
}

// Vehicle is the unified catalog entity. Records from the relational store and
// from the third-party feed are both normalized into this shape; IsLuxury is
// assigned by the source adapter from the table/dealer-configuration the
// record came from and is never recomputed downstream.
type Vehicle struct {
	ID             string         `json:"id"`
	Make           string         `json:"make"`
	Model          string         `json:"model"`
	Variant        string         `json:"variant,omitempty"`
	Year           int            `json:"year"`
	Mileage        int            `json:"mileage"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	FuelType       FuelType       `json:"fuelType"`
	Transmission   Transmission   `json:"transmission"`
	BodyType       BodyType       `json:"bodyType"`
	Doors          int            `json:"doors"`
	Seats          int            `json:"seats"`
	Color          string         `json:"color"`
	PreviousOwners int            `json:"previousOwners"`
	EngineSize     int            `json:"engineSize"`
	PowerKW        int            `json:"power"`
	PowerCV        int            `json:"horsepower"`
	Images         []VehicleImage `json:"images"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	Location       Location       `json:"location"`
	Dealer         Dealer         `json:"dealer"`
	IsLuxury       bool           `json:"isLuxury"`
	Condition      Condition      `json:"condition"`
	Availability   Availability   `json:"availability"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	LastSyncAt     *time.Time     `json:"lastSyncAt,omitempty"`
}

// PrimaryImageURL returns the URL of the primary image, or the first image
// when none is flagged, or "" for an imageless vehicle.
func (v *Vehicle) PrimaryImageURL() string {
	for _, img := range v.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(v.Images) > 0 {
		return v.Images[0].URL
	}
	return ""
}
