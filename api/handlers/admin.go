package handlers

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/VirgoSitesDev/rd-group-sub000/api"
	"github.com/VirgoSitesDev/rd-group-sub000/config"
	"github.com/VirgoSitesDev/rd-group-sub000/databases"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// Admin exposes the authenticated car management routes. The luxury query
// param selects which of the two inventory tables a request targets.
type Admin struct {
	DB databases.InventoryDatabase
}

// carPayload is the admin request/response body: the Car row with its
// nullable columns flattened to plain JSON values.
type carPayload struct {
	ID           int64    `json:"id,omitempty"`
	ExternalID   string   `json:"externalId,omitempty"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Variant      string   `json:"variant,omitempty"`
	Price        float64  `json:"price"`
	Mileage      int      `json:"mileage"`
	Year         string   `json:"year"`
	PowerKW      int      `json:"powerKw"`
	PowerCV      int      `json:"powerCv"`
	FuelType     string   `json:"fuelType"`
	Transmission string   `json:"transmission"`
	BodyType     string   `json:"bodyType"`
	Doors        int      `json:"doors"`
	Seats        int      `json:"seats"`
	EngineSize   int      `json:"engineSize"`
	Color        string   `json:"color"`
	Images       []string `json:"images,omitempty"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status,omitempty"`
	Slug         string   `json:"slug,omitempty"`
}

func (p *carPayload) toCar() *models.Car {
	car := models.Car{
		ExternalID:   nullString(p.ExternalID),
		Make:         p.Make,
		Model:        p.Model,
		Variant:      nullString(p.Variant),
		Price:        p.Price,
		Mileage:      p.Mileage,
		Year:         p.Year,
		PowerKW:      p.PowerKW,
		PowerCV:      p.PowerCV,
		FuelType:     p.FuelType,
		Transmission: p.Transmission,
		BodyType:     p.BodyType,
		Doors:        p.Doors,
		Seats:        p.Seats,
		EngineSize:   p.EngineSize,
		Color:        p.Color,
		Description:  nullString(p.Description),
		Status:       p.Status,
		Slug:         nullString(p.Slug),
	}
	if len(p.Images) > 0 {
		car.ImageURL = nullString(p.Images[0])
		blob, err := json.Marshal(models.CarImageSet{
			URLs:      p.Images,
			Count:     len(p.Images),
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		})
		if err == nil {
			car.Images = blob
		}
	}
	return &car
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// CreateCarHandler inserts a new car row and returns it with its assigned ID.
func (a Admin) CreateCarHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeCar(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	car := payload.toCar()
	id, err := a.DB.Insert(ctx, car, isLuxuryRequest(r))
	if err != nil {
		config.ErrorStatus("failed to create car", http.StatusInternalServerError, w, err)
		return
	}
	payload.ID = id
	payload.Slug = car.Slug.String
	payload.Status = car.Status

	b, err := json.Marshal(payload)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateCarHandler replaces the mutable columns of an existing car row.
func (a Admin) UpdateCarHandler(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromPath(w, r)
	if !ok {
		return
	}
	payload, ok := decodeCar(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	err := a.DB.Update(ctx, carID, payload.toCar(), isLuxuryRequest(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			config.ErrorStatus("car not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update car", http.StatusInternalServerError, w, err)
		return
	}
	payload.ID = carID

	b, err := json.Marshal(payload)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteCarHandler removes a car row.
func (a Admin) DeleteCarHandler(w http.ResponseWriter, r *http.Request) {
	carID, ok := carIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	err := a.DB.Delete(ctx, carID, isLuxuryRequest(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			config.ErrorStatus("car not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to delete car", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

// ExportCarsHandler streams the selected table as a CSV download.
func (a Admin) ExportCarsHandler(w http.ResponseWriter, r *http.Request) {
	luxury := isLuxuryRequest(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	cars, err := a.DB.ListAll(ctx, luxury)
	if err != nil {
		config.ErrorStatus("failed to list cars", http.StatusInternalServerError, w, err)
		return
	}

	filename := "cars.csv"
	if luxury {
		filename = "cars_luxury.csv"
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"id", "make", "model", "variant", "price", "mileage", "year",
		"power_kw", "power_cv", "fuel_type", "transmission", "body_type",
		"doors", "seats", "engine_size", "color", "status", "slug",
		"created_at", "updated_at",
	})
	for i := range cars {
		c := &cars[i]
		cw.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.Make,
			c.Model,
			c.Variant.String,
			strconv.FormatFloat(c.Price, 'f', 2, 64),
			strconv.Itoa(c.Mileage),
			c.Year,
			strconv.Itoa(c.PowerKW),
			strconv.Itoa(c.PowerCV),
			c.FuelType,
			c.Transmission,
			c.BodyType,
			strconv.Itoa(c.Doors),
			strconv.Itoa(c.Seats),
			strconv.Itoa(c.EngineSize),
			c.Color,
			c.Status,
			c.Slug.String,
			c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			c.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
}

func decodeCar(w http.ResponseWriter, r *http.Request) (*carPayload, bool) {
	var payload carPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return nil, false
	}
	if payload.Make == "" || payload.Model == "" {
		config.ErrorStatus("make and model are required", http.StatusBadRequest, w, nil)
		return nil, false
	}
	if payload.Price <= 0 {
		config.ErrorStatus("price must be greater than zero", http.StatusBadRequest, w, nil)
		return nil, false
	}
	return &payload, true
}

func carIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	carID, err := strconv.ParseInt(mux.Vars(r)["car_id"], 10, 64)
	if err != nil {
		config.ErrorStatus("car_id must be numeric", http.StatusBadRequest, w, err)
		return 0, false
	}
	return carID, true
}

func isLuxuryRequest(r *http.Request) bool {
	luxury, err := strconv.ParseBool(r.URL.Query().Get("luxury"))
	return err == nil && luxury
}
