package databases

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/VirgoSitesDev/rd-group-sub000/config"
)

// NewPostgres connects to the inventory store and verifies the connection
func NewPostgres(conf *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", conf.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inventory database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping inventory database: %w", err)
	}

	return db, nil
}
