package databases

// go generate: mockery --name InventoryDatabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/catalog/mappers"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

const (
	tableStandard = "cars"
	tableLuxury   = "cars_luxury"

	// safety cap applied when a partition is fetched without an offset for
	// in-memory cross-partition pagination
	partitionCap = 500
)

const carColumns = `id, external_id, make, model, variant, price, mileage, year,
	power_kw, power_cv, fuel_type, transmission, body_type, doors, seats,
	engine_size, color, image_url, images, description, status, slug,
	created_at, updated_at, last_sync_at`

// InventoryDatabase is the relational source adapter: it translates a vehicle
// filter into predicates against the two inventory tables and maps rows into
// the unified vehicle shape.
type InventoryDatabase interface {
	Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	Insert(ctx context.Context, car *models.Car, luxury bool) (int64, error)
	Update(ctx context.Context, id int64, car *models.Car, luxury bool) error
	Delete(ctx context.Context, id int64, luxury bool) error
	ListAll(ctx context.Context, luxury bool) ([]models.Car, error)
}

type inventoryDatabase struct {
	db     *sqlx.DB
	dealer models.Dealer
}

// NewInventoryDatabase initializes the inventory adapter with its sqlx
// connection and the dealership contact block stamped onto every vehicle
func NewInventoryDatabase(db *sqlx.DB, dealer models.Dealer) InventoryDatabase {
	return &inventoryDatabase{db: db, dealer: dealer}
}

func tableFor(luxury bool) string {
	if luxury {
		return tableLuxury
	}
	return tableStandard
}

// Search queries one table when the luxury flag is set, otherwise both tables
// are fetched in full (up to the partition cap), concatenated, sorted by
// creation time and paginated in memory. Cross-table pagination cannot be
// expressed as a single query over two physically separate tables.
func (d *inventoryDatabase) Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}

	// every stored car sits at the dealership itself, so a location filter
	// either matches the dealership or excludes the whole store
	if !d.matchesLocation(filter.Location) {
		result := models.Paginate(nil, filter, page, pageSize)
		return &result, nil
	}

	if filter.IsLuxury != nil {
		return d.searchPartition(ctx, filter, *filter.IsLuxury, page, pageSize)
	}

	var (
		wg       sync.WaitGroup
		standard []models.Vehicle
		luxury   []models.Vehicle
		stdErr   error
		luxErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		standard, stdErr = d.fetchPartition(ctx, filter, false)
	}()
	go func() {
		defer wg.Done()
		luxury, luxErr = d.fetchPartition(ctx, filter, true)
	}()
	wg.Wait()

	// the inventory store is load-bearing: unlike the feed adapter, a failed
	// partition aborts the whole search instead of degrading to partial data
	if stdErr != nil {
		return nil, stdErr
	}
	if luxErr != nil {
		return nil, luxErr
	}

	merged := append(standard, luxury...)
	sortByCreatedDesc(merged)
	result := models.Paginate(merged, filter, page, pageSize)
	return &result, nil
}

// matchesLocation reports whether a location filter matches the dealership
// the store serves. Matching mirrors the feed adapter: case-insensitive
// substring over city, region and address.
func (d *inventoryDatabase) matchesLocation(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	loc := d.dealer.Location
	return strings.Contains(strings.ToLower(loc.City), q) ||
		strings.Contains(strings.ToLower(loc.Region), q) ||
		strings.Contains(strings.ToLower(loc.Address), q)
}

// searchPartition runs a counted, server-side paginated query against one table
func (d *inventoryDatabase) searchPartition(ctx context.Context, filter models.VehicleFilter, luxury bool, page, pageSize int) (*models.SearchResult, error) {
	table := tableFor(luxury)
	where, args := buildWhere(filter)

	var total int
	countQuery := d.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where))
	if err := d.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}

	query := d.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY created_at DESC LIMIT ? OFFSET ?",
		carColumns, table, where))
	pageArgs := append(append([]interface{}{}, args...), pageSize, (page-1)*pageSize)

	var rows []models.Car
	if err := d.db.SelectContext(ctx, &rows, query, pageArgs...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	vehicles := make([]models.Vehicle, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, d.mapCar(&rows[i], luxury))
	}

	return &models.SearchResult{
		Vehicles: vehicles,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  page*pageSize < total,
		Filters:  filter,
		Sort:     models.SortDescriptor{Field: "createdAt", Direction: "desc"},
	}, nil
}

// fetchPartition returns the full filtered set of one table up to the safety cap
func (d *inventoryDatabase) fetchPartition(ctx context.Context, filter models.VehicleFilter, luxury bool) ([]models.Vehicle, error) {
	table := tableFor(luxury)
	where, args := buildWhere(filter)

	query := d.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY created_at DESC LIMIT %d",
		carColumns, table, where, partitionCap))

	var rows []models.Car
	if err := d.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	vehicles := make([]models.Vehicle, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, d.mapCar(&rows[i], luxury))
	}
	return vehicles, nil
}

// GetByID resolves a slug (persisted or generated) against both tables
func (d *inventoryDatabase) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	for _, luxury := range []bool{false, true} {
		table := tableFor(luxury)

		var row models.Car
		query := d.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE slug = ?", carColumns, table))
		err := d.db.GetContext(ctx, &row, query, id)
		if err == nil {
			v := d.mapCar(&row, luxury)
			return &v, nil
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to query %s by slug: %w", table, err)
		}

		// generated slugs end in the numeric row id
		rowID, ok := trailingID(id)
		if !ok {
			continue
		}
		query = d.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", carColumns, table))
		err = d.db.GetContext(ctx, &row, query, rowID)
		if err == nil {
			// row ids repeat across the two tables, so a numeric match alone
			// can land on an unrelated car; the row must reproduce the
			// requested identifier
			if GenerateSlug(row.Make, row.Model, row.ID) == id {
				v := d.mapCar(&row, luxury)
				return &v, nil
			}
			continue
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to query %s by id: %w", table, err)
		}
	}
	return nil, models.ErrVehicleNotFound
}

// Insert creates a new car row; a single autocommitted statement
func (d *inventoryDatabase) Insert(ctx context.Context, car *models.Car, luxury bool) (int64, error) {
	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	if car.Status == "" {
		car.Status = "active"
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		external_id, make, model, variant, price, mileage, year, power_kw, power_cv,
		fuel_type, transmission, body_type, doors, seats, engine_size, color,
		image_url, images, description, status, slug, created_at, updated_at, last_sync_at
	) VALUES (
		:external_id, :make, :model, :variant, :price, :mileage, :year, :power_kw, :power_cv,
		:fuel_type, :transmission, :body_type, :doors, :seats, :engine_size, :color,
		:image_url, :images, :description, :status, :slug, :created_at, :updated_at, :last_sync_at
	) RETURNING id`, tableFor(luxury))

	rows, err := d.db.NamedQueryContext(ctx, query, car)
	if err != nil {
		return 0, fmt.Errorf("failed to insert car: %w", err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan inserted car id: %w", err)
		}
	}
	car.ID = id
	return id, nil
}

// Update rewrites a car row's editable columns; a single autocommitted statement
func (d *inventoryDatabase) Update(ctx context.Context, id int64, car *models.Car, luxury bool) error {
	car.ID = id
	car.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`UPDATE %s SET
		make = :make, model = :model, variant = :variant, price = :price,
		mileage = :mileage, year = :year, power_kw = :power_kw, power_cv = :power_cv,
		fuel_type = :fuel_type, transmission = :transmission, body_type = :body_type,
		doors = :doors, seats = :seats, engine_size = :engine_size, color = :color,
		image_url = :image_url, images = :images, description = :description,
		status = :status, slug = :slug, updated_at = :updated_at
	WHERE id = :id`, tableFor(luxury))

	res, err := d.db.NamedExecContext(ctx, query, car)
	if err != nil {
		return fmt.Errorf("failed to update car %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a car row
func (d *inventoryDatabase) Delete(ctx context.Context, id int64, luxury bool) error {
	query := d.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableFor(luxury)))
	res, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete car %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns every row of one table, newest first, for the admin export
func (d *inventoryDatabase) ListAll(ctx context.Context, luxury bool) ([]models.Car, error) {
	var rows []models.Car
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC", carColumns, tableFor(luxury))
	if err := d.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", tableFor(luxury), err)
	}
	return rows, nil
}

// buildWhere translates the filter into SQL predicates with ? placeholders.
// The caller rebinds for postgres. Only active rows are ever eligible.
func buildWhere(f models.VehicleFilter) (string, []interface{}) {
	clauses := []string{"status = 'active'"}
	var args []interface{}

	add := func(clause string, a ...interface{}) {
		clauses = append(clauses, clause)
		args = append(args, a...)
	}
	in := func(col string, vals []string) {
		placeholders := make([]string, len(vals))
		for i, v := range vals {
			placeholders[i] = "?"
			args = append(args, strings.ToLower(v))
		}
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) IN (%s)", col, strings.Join(placeholders, ",")))
	}

	if f.Search != "" {
		q := "%" + strings.ToLower(f.Search) + "%"
		add("(LOWER(make) LIKE ? OR LOWER(model) LIKE ?)", q, q)
	}
	if len(f.Makes) > 0 {
		in("make", f.Makes)
	}
	if len(f.Models) > 0 {
		in("model", f.Models)
	}
	if f.PriceMin > 0 {
		add("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		add("price <= ?", f.PriceMax)
	}
	if f.YearMin > 0 {
		add(`NULLIF(substring(year from '\d{4}'), '')::int >= ?`, f.YearMin)
	}
	if f.YearMax > 0 {
		add(`NULLIF(substring(year from '\d{4}'), '')::int <= ?`, f.YearMax)
	}
	if f.MileageMin > 0 {
		add("mileage >= ?", f.MileageMin)
	}
	if f.MileageMax > 0 {
		add("mileage <= ?", f.MileageMax)
	}
	if f.HorsepowerMin > 0 {
		add("power_cv >= ?", f.HorsepowerMin)
	}
	if f.PowerKWMin > 0 {
		add("power_kw >= ?", f.PowerKWMin)
	}
	if len(f.Colors) > 0 {
		in("color", f.Colors)
	}
	if len(f.FuelTypes) > 0 {
		vals := make([]string, len(f.FuelTypes))
		for i, ft := range f.FuelTypes {
			vals[i] = mappers.FuelTypeToExternal(ft)
		}
		in("fuel_type", vals)
	}
	if len(f.Transmissions) > 0 {
		vals := make([]string, len(f.Transmissions))
		for i, t := range f.Transmissions {
			vals[i] = mappers.TransmissionToExternal(t)
		}
		in("transmission", vals)
	}
	if len(f.BodyTypes) > 0 {
		vals := make([]string, len(f.BodyTypes))
		for i, b := range f.BodyTypes {
			vals[i] = mappers.BodyTypeToExternal(b)
		}
		in("body_type", vals)
	}

	return strings.Join(clauses, " AND "), args
}

var yearPattern = regexp.MustCompile(`\d{4}`)
var trailingIDPattern = regexp.MustCompile(`-(\d+)$`)
var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds the deterministic identifier for rows without a
// persisted slug: lowercased ascii make, model and the numeric row id.
func GenerateSlug(make, model string, id int64) string {
	part := func(s string) string {
		return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(s), "-"), "-")
	}
	return fmt.Sprintf("%s-%s-%d", part(make), part(model), id)
}

func trailingID(slug string) (int64, bool) {
	m := trailingIDPattern.FindStringSubmatch(slug)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// mapCar normalizes a table row into the unified vehicle shape. The luxury
// flag comes from the table the row was read from, never from the row itself.
func (d *inventoryDatabase) mapCar(car *models.Car, luxury bool) models.Vehicle {
	id := car.Slug.String
	if id == "" {
		id = GenerateSlug(car.Make, car.Model, car.ID)
	}

	year := 0
	if m := yearPattern.FindString(car.Year); m != "" {
		year, _ = strconv.Atoi(m)
	} else {
		year = car.CreatedAt.Year()
	}

	v := models.Vehicle{
		ID:           id,
		Make:         car.Make,
		Model:        car.Model,
		Variant:      car.Variant.String,
		Year:         year,
		Mileage:      car.Mileage,
		Price:        car.Price,
		Currency:     "EUR",
		FuelType:     mappers.FuelTypeFromExternal(car.FuelType),
		Transmission: mappers.TransmissionFromExternal(car.Transmission),
		BodyType:     mappers.BodyTypeFromExternal(car.BodyType),
		Doors:        car.Doors,
		Seats:        car.Seats,
		Color:        car.Color,
		EngineSize:   car.EngineSize,
		PowerKW:      car.PowerKW,
		PowerCV:      car.PowerCV,
		Images:       carImages(car),
		Description:  car.Description.String,
		Location:     d.dealer.Location,
		Dealer:       d.dealer,
		IsLuxury:     luxury,
		Condition:    models.ConditionUsed,
		Availability: availabilityFromStatus(car.Status),
		CreatedAt:    car.CreatedAt,
		UpdatedAt:    car.UpdatedAt,
	}
	if car.LastSyncAt.Valid {
		t := car.LastSyncAt.Time
		v.LastSyncAt = &t
	}
	return v
}

func carImages(car *models.Car) []models.VehicleImage {
	var set models.CarImageSet
	if len(car.Images) > 0 {
		if err := json.Unmarshal(car.Images, &set); err != nil {
			zap.S().Warnw("failed to decode car image set", "car", car.ID, "error", err)
		}
	}
	urls := set.URLs
	if len(urls) == 0 && car.ImageURL.String != "" {
		urls = []string{car.ImageURL.String}
	}

	images := make([]models.VehicleImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, models.VehicleImage{
			URL:       u,
			AltText:   fmt.Sprintf("%s %s", car.Make, car.Model),
			IsPrimary: i == 0,
			Order:     i,
		})
	}
	return images
}

func availabilityFromStatus(status string) models.Availability {
	switch status {
	case "reserved":
		return models.AvailabilityReserved
	case "sold":
		return models.AvailabilitySold
	default:
		return models.AvailabilityAvailable
	}
}

func sortByCreatedDesc(vehicles []models.Vehicle) {
	// stable so repeated searches over unchanged data return identical ordering
	sort.SliceStable(vehicles, func(i, j int) bool {
		return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
	})
}
