package databases

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "fiat-panda-12", GenerateSlug("Fiat", "Panda", 12))
	assert.Equal(t, "alfa-romeo-giulia-quadrifoglio-3", GenerateSlug("Alfa Romeo", "Giulia Quadrifoglio", 3))
	assert.Equal(t, "citroen-c3-9", GenerateSlug("Citroën", "C3", 9))
	assert.Equal(t, "mercedes-benz-a-180-1", GenerateSlug("Mercedes-Benz", "A 180", 1))
}

func TestTrailingID(t *testing.T) {
	id, ok := trailingID("fiat-panda-12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = trailingID("fiat-panda")
	assert.False(t, ok)

	_, ok = trailingID("")
	assert.False(t, ok)
}

func TestBuildWhereAlwaysActive(t *testing.T) {
	where, args := buildWhere(models.VehicleFilter{})
	assert.Equal(t, "status = 'active'", where)
	assert.Empty(t, args)
}

func TestBuildWherePredicates(t *testing.T) {
	where, args := buildWhere(models.VehicleFilter{
		Search:   "panda",
		Makes:    []string{"Fiat", "Abarth"},
		PriceMin: 5000,
		PriceMax: 20000,
		YearMin:  2015,
		FuelTypes: []models.FuelType{
			models.FuelPetrol,
		},
	})

	assert.Contains(t, where, "status = 'active'")
	assert.Contains(t, where, "(LOWER(make) LIKE ? OR LOWER(model) LIKE ?)")
	assert.Contains(t, where, "LOWER(make) IN (?,?)")
	assert.Contains(t, where, "price >= ?")
	assert.Contains(t, where, "price <= ?")
	assert.Contains(t, where, `substring(year from '\d{4}')`)
	assert.Contains(t, where, "LOWER(fuel_type) IN (?)")

	// search LIKE twice, two makes, price bounds, year, fuel external value
	assert.Equal(t, []interface{}{
		"%panda%", "%panda%", "fiat", "abarth", 5000.0, 20000.0, 2015, "benzina",
	}, args)
}

func TestMapCar(t *testing.T) {
	d := &inventoryDatabase{dealer: models.Dealer{Name: "RD Group"}}
	created := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)

	car := models.Car{
		ID:           12,
		Make:         "Fiat",
		Model:        "Panda",
		Price:        9500,
		Mileage:      62000,
		Year:         "03/2018",
		FuelType:     "benzina",
		Transmission: "manuale",
		BodyType:     "city car",
		Doors:        5,
		Seats:        5,
		Color:        "Rosso",
		Status:       "active",
		Images:       []byte(`{"urls": ["https://img.example.com/a.jpg", "https://img.example.com/b.jpg"], "count": 2}`),
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	v := d.mapCar(&car, false)
	assert.Equal(t, "fiat-panda-12", v.ID, "generated slug when none persisted")
	assert.Equal(t, 2018, v.Year)
	assert.Equal(t, models.FuelPetrol, v.FuelType)
	assert.Equal(t, models.TransmissionManual, v.Transmission)
	assert.Equal(t, models.BodyHatchback, v.BodyType)
	assert.Equal(t, "EUR", v.Currency)
	assert.Equal(t, models.AvailabilityAvailable, v.Availability)
	assert.False(t, v.IsLuxury)
	assert.Len(t, v.Images, 2)
	assert.True(t, v.Images[0].IsPrimary)
	assert.False(t, v.Images[1].IsPrimary)
}

func TestMapCarFallbacks(t *testing.T) {
	d := &inventoryDatabase{dealer: models.Dealer{Name: "RD Group"}}
	created := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)

	car := models.Car{
		ID:        3,
		Make:      "Ferrari",
		Model:     "Roma",
		Price:     210000,
		Year:      "n.d.",
		Slug:      sql.NullString{String: "ferrari-roma-speciale", Valid: true},
		ImageURL:  sql.NullString{String: "https://img.example.com/roma.jpg", Valid: true},
		Status:    "reserved",
		CreatedAt: created,
		UpdatedAt: created,
	}

	v := d.mapCar(&car, true)
	assert.Equal(t, "ferrari-roma-speciale", v.ID, "persisted slug wins")
	assert.Equal(t, 2021, v.Year, "creation year when no 4-digit year in the column")
	assert.True(t, v.IsLuxury)
	assert.Equal(t, models.AvailabilityReserved, v.Availability)
	if assert.Len(t, v.Images, 1) {
		assert.Equal(t, "https://img.example.com/roma.jpg", v.Images[0].URL)
		assert.True(t, v.Images[0].IsPrimary)
	}
}

var carTestColumns = []string{
	"id", "external_id", "make", "model", "variant", "price", "mileage", "year",
	"power_kw", "power_cv", "fuel_type", "transmission", "body_type", "doors", "seats",
	"engine_size", "color", "image_url", "images", "description", "status", "slug",
	"created_at", "updated_at", "last_sync_at",
}

func carTestRow(id int64, make, model string, created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(carTestColumns).AddRow(
		id, nil, make, model, nil, 21000.0, 48000, "2021",
		100, 136, "benzina", "manuale", "berlina", 5, 5,
		1600, "Nero", nil, nil, nil, "active", nil,
		created, created, nil,
	)
}

// Row ids repeat across the standard and luxury tables. A generated luxury
// identifier whose numeric suffix also exists as a standard row id must still
// resolve to the luxury car, not to whatever the standard table holds at
// that id.
func TestGetByIDCrossTableIDCollision(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	d := &inventoryDatabase{db: sqlx.NewDb(db, "postgres"), dealer: models.Dealer{Name: "RD Group"}}

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// standard table: no persisted slug, and id 3 is an unrelated car
	mock.ExpectQuery(`FROM cars WHERE slug =`).
		WithArgs("ferrari-roma-3").
		WillReturnRows(sqlmock.NewRows(carTestColumns))
	mock.ExpectQuery(`FROM cars WHERE id =`).
		WithArgs(int64(3)).
		WillReturnRows(carTestRow(3, "Fiat", "Panda", created))

	// luxury table resolves the identifier
	mock.ExpectQuery(`FROM cars_luxury WHERE slug =`).
		WithArgs("ferrari-roma-3").
		WillReturnRows(sqlmock.NewRows(carTestColumns))
	mock.ExpectQuery(`FROM cars_luxury WHERE id =`).
		WithArgs(int64(3)).
		WillReturnRows(carTestRow(3, "Ferrari", "Roma", created))

	v, err := d.GetByID(context.Background(), "ferrari-roma-3")
	assert.NoError(t, err)
	assert.Equal(t, "ferrari-roma-3", v.ID)
	assert.Equal(t, "Ferrari", v.Make)
	assert.True(t, v.IsLuxury)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDRejectsMismatchedFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	d := &inventoryDatabase{db: sqlx.NewDb(db, "postgres"), dealer: models.Dealer{Name: "RD Group"}}

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM cars WHERE slug =`).WillReturnRows(sqlmock.NewRows(carTestColumns))
	mock.ExpectQuery(`FROM cars WHERE id =`).
		WithArgs(int64(7)).
		WillReturnRows(carTestRow(7, "Fiat", "Tipo", created))
	mock.ExpectQuery(`FROM cars_luxury WHERE slug =`).WillReturnRows(sqlmock.NewRows(carTestColumns))
	mock.ExpectQuery(`FROM cars_luxury WHERE id =`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(carTestColumns))

	_, err = d.GetByID(context.Background(), "lancia-ypsilon-7")
	assert.ErrorIs(t, err, models.ErrVehicleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchesLocation(t *testing.T) {
	d := &inventoryDatabase{dealer: models.Dealer{
		Name: "RD Group",
		Location: models.Location{
			Address: "Via Fiorentina 331",
			City:    "Pistoia",
			Region:  "Toscana",
		},
	}}

	assert.True(t, d.matchesLocation(""))
	assert.True(t, d.matchesLocation("pistoia"))
	assert.True(t, d.matchesLocation("Toscana"))
	assert.True(t, d.matchesLocation("fiorentina"))
	assert.False(t, d.matchesLocation("milano"))
}

// A location filter that does not match the dealership excludes the whole
// store without touching the database.
func TestSearchNonMatchingLocation(t *testing.T) {
	d := &inventoryDatabase{dealer: models.Dealer{
		Name:     "RD Group",
		Location: models.Location{City: "Pistoia", Region: "Toscana"},
	}}

	res, err := d.Search(context.Background(), models.VehicleFilter{Location: "milano"}, 1, 12)
	assert.NoError(t, err)
	assert.Empty(t, res.Vehicles)
	assert.Zero(t, res.Total)
	assert.False(t, res.HasMore)

	luxury := true
	res, err = d.Search(context.Background(), models.VehicleFilter{Location: "milano", IsLuxury: &luxury}, 1, 12)
	assert.NoError(t, err)
	assert.Zero(t, res.Total)
}
