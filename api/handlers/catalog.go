package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/VirgoSitesDev/rd-group-sub000/api"
	"github.com/VirgoSitesDev/rd-group-sub000/config"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// CatalogService abstracts the aggregation layer for the vehicle routes.
type CatalogService interface {
	Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
}

// Catalog exposes the public vehicle listing and detail routes.
type Catalog struct {
	Service CatalogService
}

// VehicleSearchHandler returns a page of vehicles matching the query
// string filters, merged across the configured sources.
func (c Catalog) VehicleSearchHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := filterFromQuery(r)
	page := getIntParam(r, "page", 1)
	pageSize := getIntParam(r, "limit", 12)

	result, err := c.Service.Search(ctx, filter, page, pageSize)
	if err != nil {
		config.ErrorStatus("failed to search vehicles", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(result)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehicleByIDHandler returns a single vehicle by its catalog ID.
func (c Catalog) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicleID := mux.Vars(r)["vehicle_id"]
	if vehicleID == "" {
		config.ErrorStatus("vehicle_id is required", http.StatusBadRequest, w, nil)
		return
	}

	vehicle, err := c.Service.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			config.ErrorStatus("vehicle not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get vehicle", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(vehicle)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// filterFromQuery maps the query string onto a VehicleFilter. Multi-value
// params accept both repeated keys and comma-separated lists.
func filterFromQuery(r *http.Request) models.VehicleFilter {
	q := r.URL.Query()

	filter := models.VehicleFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Makes:    getListParam(r, "make"),
		Models:   getListParam(r, "model"),
		Colors:   getListParam(r, "color"),
		Location: strings.TrimSpace(q.Get("location")),

		// zero means "no bound" throughout the filter
		PriceMin:   getFloatParam(r, "priceMin"),
		PriceMax:   getFloatParam(r, "priceMax"),
		YearMin:    getIntParam(r, "yearMin", 0),
		YearMax:    getIntParam(r, "yearMax", 0),
		MileageMin: getIntParam(r, "mileageMin", 0),
		MileageMax: getIntParam(r, "mileageMax", 0),

		HorsepowerMin: getIntParam(r, "horsepowerMin", 0),
		PowerKWMin:    getIntParam(r, "powerMin", 0),
	}

	for _, v := range getListParam(r, "fuelType") {
		filter.FuelTypes = append(filter.FuelTypes, models.FuelType(v))
	}
	for _, v := range getListParam(r, "transmission") {
		filter.Transmissions = append(filter.Transmissions, models.Transmission(v))
	}
	for _, v := range getListParam(r, "bodyType") {
		filter.BodyTypes = append(filter.BodyTypes, models.BodyType(v))
	}

	if raw := q.Get("luxury"); raw != "" {
		if luxury, err := strconv.ParseBool(raw); err == nil {
			filter.IsLuxury = &luxury
		}
	}
	return filter
}

// getIntParam returns the query param as an int, or fallback when
// absent or malformed.
func getIntParam(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func getFloatParam(r *http.Request, key string) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

func getListParam(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
