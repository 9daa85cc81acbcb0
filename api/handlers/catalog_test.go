package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// stubCatalog captures the search arguments the handler produced and plays
// back canned results.
type stubCatalog struct {
	filter   models.VehicleFilter
	page     int
	pageSize int

	result  *models.SearchResult
	vehicle *models.Vehicle
	err     error
}

func (s *stubCatalog) Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error) {
	s.filter = filter
	s.page = page
	s.pageSize = pageSize
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubCatalog) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicle, nil
}

func TestVehicleSearchHandlerParsesFilters(t *testing.T) {
	stub := &stubCatalog{result: &models.SearchResult{Vehicles: []models.Vehicle{}, Page: 2, PageSize: 24}}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles?search=panda&make=Fiat,Abarth&model=Panda"+
		"&priceMin=5000&priceMax=20000&yearMin=2015&yearMax=2022&mileageMax=80000"+
		"&fuelType=petrol&fuelType=hybrid&transmission=automatic&bodyType=hatchback"+
		"&color=Rosso&luxury=false&page=2&limit=24", nil)
	w := httptest.NewRecorder()
	c.VehicleSearchHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "panda", stub.filter.Search)
	assert.Equal(t, []string{"Fiat", "Abarth"}, stub.filter.Makes)
	assert.Equal(t, []string{"Panda"}, stub.filter.Models)
	assert.Equal(t, []string{"Rosso"}, stub.filter.Colors)
	assert.Equal(t, 5000.0, stub.filter.PriceMin)
	assert.Equal(t, 20000.0, stub.filter.PriceMax)
	assert.Equal(t, 2015, stub.filter.YearMin)
	assert.Equal(t, 2022, stub.filter.YearMax)
	assert.Equal(t, 80000, stub.filter.MileageMax)
	assert.Zero(t, stub.filter.MileageMin)
	assert.Equal(t, []models.FuelType{models.FuelPetrol, models.FuelHybrid}, stub.filter.FuelTypes)
	assert.Equal(t, []models.Transmission{models.TransmissionAutomatic}, stub.filter.Transmissions)
	assert.Equal(t, []models.BodyType{models.BodyHatchback}, stub.filter.BodyTypes)
	if assert.NotNil(t, stub.filter.IsLuxury) {
		assert.False(t, *stub.filter.IsLuxury)
	}
	assert.Equal(t, 2, stub.page)
	assert.Equal(t, 24, stub.pageSize)
}

func TestVehicleSearchHandlerDefaults(t *testing.T) {
	stub := &stubCatalog{result: &models.SearchResult{Vehicles: []models.Vehicle{}}}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles", nil)
	w := httptest.NewRecorder()
	c.VehicleSearchHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.page)
	assert.Equal(t, 12, stub.pageSize)
	assert.Nil(t, stub.filter.IsLuxury)
	assert.Empty(t, stub.filter.Makes)
}

func TestVehicleSearchHandlerMalformedNumbersIgnored(t *testing.T) {
	stub := &stubCatalog{result: &models.SearchResult{Vehicles: []models.Vehicle{}}}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles?priceMin=abc&yearMin=soon&page=x", nil)
	w := httptest.NewRecorder()
	c.VehicleSearchHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, stub.filter.PriceMin)
	assert.Zero(t, stub.filter.YearMin)
	assert.Equal(t, 1, stub.page)
}

func TestVehicleSearchHandlerSourceError(t *testing.T) {
	stub := &stubCatalog{err: errors.New("boom")}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles", nil)
	w := httptest.NewRecorder()
	c.VehicleSearchHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to search vehicles")
}

func TestVehicleByIDHandler(t *testing.T) {
	stub := &stubCatalog{vehicle: &models.Vehicle{ID: "fiat-panda-7", Make: "Fiat", Model: "Panda"}}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles/fiat-panda-7", nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": "fiat-panda-7"})
	w := httptest.NewRecorder()
	c.VehicleByIDHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Vehicle
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Equal(t, "fiat-panda-7", got.ID)
	assert.Equal(t, "Fiat", got.Make)
}

func TestVehicleByIDHandlerNotFound(t *testing.T) {
	stub := &stubCatalog{err: models.ErrVehicleNotFound}
	c := Catalog{Service: stub}

	req := httptest.NewRequest("GET", "/api/v1/vehicles/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": "nope"})
	w := httptest.NewRecorder()
	c.VehicleByIDHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "vehicle not found")
}
