package models

import (
	"database/sql"
	"time"
)

// CarImageSet mirrors the JSON blob the images column holds:
// {"urls": [...], "count": n, "updatedAt": "..."}
type CarImageSet struct {
	URLs      []string `json:"urls"`
	Count     int      `json:"count"`
	UpdatedAt string   `json:"updatedAt"`
}

// Car holds one row of the cars / cars_luxury tables. The two tables are
// structurally identical; which one a row lives in decides the vehicle's
// luxury flag.
type Car struct {
	ID           int64          `db:"id" json:"id"`
	ExternalID   sql.NullString `db:"external_id" json:"externalId,omitempty"`
	Make         string         `db:"make" json:"make"`
	Model        string         `db:"model" json:"model"`
	Variant      sql.NullString `db:"variant" json:"variant,omitempty"`
	Price        float64        `db:"price" json:"price"`
	Mileage      int            `db:"mileage" json:"mileage"`
	Year         string         `db:"year" json:"year"`
	PowerKW      int            `db:"power_kw" json:"powerKw"`
	PowerCV      int            `db:"power_cv" json:"powerCv"`
	FuelType     string         `db:"fuel_type" json:"fuelType"`
	Transmission string         `db:"transmission" json:"transmission"`
	BodyType     string         `db:"body_type" json:"bodyType"`
	Doors        int            `db:"doors" json:"doors"`
	Seats        int            `db:"seats" json:"seats"`
	EngineSize   int            `db:"engine_size" json:"engineSize"`
	Color        string         `db:"color" json:"color"`
	ImageURL     sql.NullString `db:"image_url" json:"imageUrl,omitempty"`
	Images       []byte         `db:"images" json:"-"`
	Description  sql.NullString `db:"description" json:"description,omitempty"`
	Status       string         `db:"status" json:"status"`
	Slug         sql.NullString `db:"slug" json:"slug,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
	LastSyncAt   sql.NullTime   `db:"last_sync_at" json:"lastSyncAt,omitempty"`
}
