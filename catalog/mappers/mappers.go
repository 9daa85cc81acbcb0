// Package mappers translates between the internal catalog vocabulary and the
// Italian vocabulary the relational store and the listing feed use. All
// functions are pure; an unrecognized external value is logged and coerced to
// a fixed default rather than surfaced as an error, so upstream vocabulary
// drift can never break a catalog read.
package mappers

import (
	"strings"

	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

var fuelFromExternal = map[string]models.FuelType{
	"benzina":        models.FuelPetrol,
	"diesel":         models.FuelDiesel,
	"gasolio":        models.FuelDiesel,
	"elettrica":      models.FuelElectric,
	"elettrico":      models.FuelElectric,
	"ibrida":         models.FuelHybrid,
	"ibrida benzina": models.FuelHybrid,
	"ibrida plug-in": models.FuelPluginHybrid,
	"plug-in":        models.FuelPluginHybrid,
	"gpl":            models.FuelLPG,
	"metano":         models.FuelCNG,
	"idrogeno":       models.FuelHydrogen,
	"altro":          models.FuelOther,
}

var fuelToExternal = map[models.FuelType]string{
	models.FuelPetrol:       "benzina",
	models.FuelDiesel:       "diesel",
	models.FuelElectric:     "elettrica",
	models.FuelHybrid:       "ibrida",
	models.FuelPluginHybrid: "ibrida plug-in",
	models.FuelLPG:          "gpl",
	models.FuelCNG:          "metano",
	models.FuelHydrogen:     "idrogeno",
	models.FuelOther:        "altro",
}

var transmissionFromExternal = map[string]models.Transmission{
	"manuale":        models.TransmissionManual,
	"automatico":     models.TransmissionAutomatic,
	"automatica":     models.TransmissionAutomatic,
	"semiautomatico": models.TransmissionSemiAutomatic,
	"sequenziale":    models.TransmissionSemiAutomatic,
	"cvt":            models.TransmissionCVT,
	"variatore":      models.TransmissionCVT,
}

var transmissionToExternal = map[models.Transmission]string{
	models.TransmissionManual:        "manuale",
	models.TransmissionAutomatic:     "automatico",
	models.TransmissionSemiAutomatic: "semiautomatico",
	models.TransmissionCVT:           "cvt",
}

var bodyFromExternal = map[string]models.BodyType{
	"berlina":       models.BodySedan,
	"city car":      models.BodyHatchback,
	"utilitaria":    models.BodyHatchback,
	"station wagon": models.BodyWagon,
	"familiare":     models.BodyWagon,
	"suv":           models.BodySUV,
	"fuoristrada":   models.BodySUV,
	"coupé":         models.BodyCoupe,
	"coupe":         models.BodyCoupe,
	"cabrio":        models.BodyConvertible,
	"spider":        models.BodyConvertible,
	"furgone":       models.BodyVan,
	"pick-up":       models.BodyPickup,
	"pickup":        models.BodyPickup,
	"monovolume":    models.BodyMinivan,
	"altro":         models.BodyOther,
}

var bodyToExternal = map[models.BodyType]string{
	models.BodySedan:       "berlina",
	models.BodyHatchback:   "city car",
	models.BodyWagon:       "station wagon",
	models.BodySUV:         "suv",
	models.BodyCoupe:       "coupé",
	models.BodyConvertible: "cabrio",
	models.BodyVan:         "furgone",
	models.BodyPickup:      "pick-up",
	models.BodyMinivan:     "monovolume",
	models.BodyOther:       "altro",
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// FuelTypeFromExternal maps an upstream fuel string to the internal enum,
// defaulting to petrol
func FuelTypeFromExternal(raw string) models.FuelType {
	if v, ok := fuelFromExternal[normalize(raw)]; ok {
		return v
	}
	if raw != "" {
		zap.S().Warnw("unknown fuel type, defaulting to petrol", "value", raw)
	}
	return models.FuelPetrol
}

// FuelTypeToExternal maps an internal fuel value to its upstream string
func FuelTypeToExternal(fuel models.FuelType) string {
	return fuelToExternal[fuel]
}

// TransmissionFromExternal maps an upstream transmission string to the
// internal enum, defaulting to manual
func TransmissionFromExternal(raw string) models.Transmission {
	if v, ok := transmissionFromExternal[normalize(raw)]; ok {
		return v
	}
	if raw != "" {
		zap.S().Warnw("unknown transmission, defaulting to manual", "value", raw)
	}
	return models.TransmissionManual
}

// TransmissionToExternal maps an internal transmission value to its upstream string
func TransmissionToExternal(t models.Transmission) string {
	return transmissionToExternal[t]
}

// BodyTypeFromExternal maps an upstream body string to the internal enum,
// defaulting to sedan
func BodyTypeFromExternal(raw string) models.BodyType {
	if v, ok := bodyFromExternal[normalize(raw)]; ok {
		return v
	}
	if raw != "" {
		zap.S().Warnw("unknown body type, defaulting to sedan", "value", raw)
	}
	return models.BodySedan
}

// BodyTypeToExternal maps an internal body value to its upstream string
func BodyTypeToExternal(b models.BodyType) string {
	return bodyToExternal[b]
}
