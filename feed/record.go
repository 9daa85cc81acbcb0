package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/clbanning/mxj/v2"
	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/catalog/mappers"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// the provider's timestamps look like "27-08-2026 14:05"
const feedTimeLayout = "02-01-2006 15:04"

// records with an unparseable last-update sort last, not first
var farPast = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

var yearPattern = regexp.MustCompile(`\d{4}`)
var digitPattern = regexp.MustCompile(`\d+`)

// parseRecords decodes the XML body into a generic map tree and returns the
// record maps under vehicles/ad. No schema validation: a missing field simply
// maps to its default later on.
func parseRecords(body []byte) ([]map[string]interface{}, error) {
	tree, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed xml: %w", err)
	}

	root, ok := tree["vehicles"].(map[string]interface{})
	if !ok {
		// valid XML with no vehicles element means zero records
		return nil, nil
	}

	var records []map[string]interface{}
	switch ads := root["ad"].(type) {
	case []interface{}:
		for _, ad := range ads {
			if m, ok := ad.(map[string]interface{}); ok {
				records = append(records, m)
			}
		}
	case map[string]interface{}:
		records = append(records, ads)
	}
	return records, nil
}

// mapRecord normalizes one feed record into the unified vehicle shape.
// The second return is false when the record fails admission: missing
// identifier/title/make/model, a denylisted ad number, or a price that is
// not strictly positive.
func (c *Client) mapRecord(record map[string]interface{}, cfg DealerConfig) (models.Vehicle, bool) {
	adNumber := text(record, "ad_number")
	title := text(record, "title")
	make := text(record, "make", "brand")
	model := text(record, "model")

	if adNumber == "" || title == "" || make == "" || model == "" {
		zap.S().Debugw("feed record rejected, missing required field", "ad", adNumber)
		return models.Vehicle{}, false
	}
	if _, bad := c.denylist[adNumber]; bad {
		zap.S().Debugw("feed record rejected, denylisted", "ad", adNumber)
		return models.Vehicle{}, false
	}

	price := parsePrice(text(record, "price"))
	if price <= 0 {
		zap.S().Debugw("feed record rejected, non-positive price", "ad", adNumber)
		return models.Vehicle{}, false
	}

	transmission := text(record, "transmission_type")
	if transmission == "" {
		// some inventories only populate the legacy gearbox field
		transmission = text(record, "gearbox")
	}

	updatedAt := parseFeedTime(text(record, "last_update"))
	createdAt := parseFeedTime(text(record, "insertion_date"))

	v := models.Vehicle{
		ID:           adNumber,
		Make:         make,
		Model:        model,
		Variant:      text(record, "version"),
		Year:         parseYear(text(record, "registration_date")),
		Mileage:      parseInt(text(record, "km"), 0),
		Price:        price,
		Currency:     "EUR",
		FuelType:     mappers.FuelTypeFromExternal(text(record, "fuel")),
		Transmission: mappers.TransmissionFromExternal(transmission),
		BodyType:     mappers.BodyTypeFromExternal(text(record, "body")),
		Doors:        parseInt(text(record, "doors"), 5),
		Seats:        parseInt(text(record, "seats"), 5),
		Color:        text(record, "color"),
		EngineSize:   parseInt(text(record, "engine_size"), 0),
		PowerKW:      parseInt(text(record, "power_kw"), 0),
		PowerCV:      parseInt(text(record, "power_cv"), 0),
		Images:       recordImages(record, cfg, title),
		Description:  text(record, "description"),
		Location:     cfg.Dealer.Location,
		Dealer:       cfg.Dealer,
		IsLuxury:     cfg.Luxury,
		Condition:    models.ConditionUsed,
		Availability: models.AvailabilityAvailable,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	return v, true
}

// text extracts a string leaf for the first matching key. mxj yields string
// leaves for plain and CDATA elements and a #text entry for mixed content.
func text(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := record[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]interface{}:
			if s, ok := v["#text"].(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// recordImages collects the feed image list, falling back to the dealer logo
// so no vehicle is ever imageless
func recordImages(record map[string]interface{}, cfg DealerConfig, title string) []models.VehicleImage {
	var urls []string

	if images, ok := record["images"].(map[string]interface{}); ok {
		switch imgs := images["image"].(type) {
		case []interface{}:
			for _, img := range imgs {
				if u := imageURL(img); u != "" {
					urls = append(urls, u)
				}
			}
		default:
			if u := imageURL(imgs); u != "" {
				urls = append(urls, u)
			}
		}
	}

	if len(urls) == 0 {
		urls = []string{cfg.LogoURL}
	}

	out := make([]models.VehicleImage, 0, len(urls))
	for i, u := range urls {
		out = append(out, models.VehicleImage{
			URL:       u,
			AltText:   title,
			IsPrimary: i == 0,
			Order:     i,
		})
	}
	return out
}

func imageURL(img interface{}) string {
	switch v := img.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		for _, key := range []string{"url", "big", "#text"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// parsePrice strips currency decoration and normalizes the Italian number
// format: "15.000,50" -> 15000.50. A missing or zero price yields 0, which
// fails admission upstream.
func parsePrice(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0
	}

	if strings.Contains(cleaned, ",") {
		// comma decimal, dots are thousands separators
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else if i := strings.LastIndex(cleaned, "."); i >= 0 && len(cleaned)-i-1 == 3 {
		// "15.000" is fifteen thousand, not fifteen
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// parseYear extracts a 4-digit year from the registration date, defaulting to
// the current calendar year
func parseYear(raw string) int {
	if m := yearPattern.FindString(raw); m != "" {
		year, _ := strconv.Atoi(m)
		return year
	}
	return time.Now().Year()
}

// parseInt keeps only digits, falling back to a fixed default when empty
func parseInt(raw string, fallback int) int {
	digits := strings.Join(digitPattern.FindAllString(raw, -1), "")
	if digits == "" {
		return fallback
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return fallback
	}
	return n
}

func parseFeedTime(raw string) time.Time {
	t, err := time.Parse(feedTimeLayout, raw)
	if err != nil {
		return farPast
	}
	return t
}
