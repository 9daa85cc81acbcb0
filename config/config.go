package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port        string
	BaseURL     string
	DatabaseURL string

	// lead store (mongo)
	MongoURL          string
	MongoDatabaseName string

	// third-party feed
	FeedBaseURL      string
	FeedProxyURL     string
	FeedCustomerCode string
	FeedLuxuryCode   string
	FeedDenylist     []string

	// canonical catalog source: "database", "feed" or "all"
	CatalogSource string

	AdminEmail        string
	AdminPasswordHash string
	SendgridAPIKey    string
	LeadsNotifyEmail  string
}

// New sets up the logger and reads all config values from the environment
func New() *Config {

	// .env is optional, real deployments configure through the environment
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:              os.Getenv("PORT"),
		BaseURL:           os.Getenv("BASE_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MongoURL:          os.Getenv("DB_URI"),
		MongoDatabaseName: os.Getenv("DB_NAME"),
		FeedBaseURL:       os.Getenv("FEED_BASE_URL"),
		FeedProxyURL:      os.Getenv("FEED_PROXY_URL"),
		FeedCustomerCode:  os.Getenv("FEED_CUSTOMER_CODE"),
		FeedLuxuryCode:    os.Getenv("FEED_LUXURY_CUSTOMER_CODE"),
		FeedDenylist:      splitList(os.Getenv("FEED_DENYLIST")),
		CatalogSource:     os.Getenv("CATALOG_SOURCE"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		LeadsNotifyEmail:  os.Getenv("LEADS_NOTIFY_EMAIL"),
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
