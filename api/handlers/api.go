package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/api"
	"github.com/VirgoSitesDev/rd-group-sub000/catalog"
	"github.com/VirgoSitesDev/rd-group-sub000/config"
	"github.com/VirgoSitesDev/rd-group-sub000/databases"
	"github.com/VirgoSitesDev/rd-group-sub000/feed"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// App stores the router and the data sources, so it can be reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Feed       *feed.Client
	dbHelper   databases.DatabaseHelper
	inventory  databases.InventoryDatabase
	aggregator *catalog.Aggregator
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.NewAdminAuth(&a.Config)
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)
	r.Use(api.TimeoutMiddleware(60 * time.Second))

	c := Catalog{Service: a.aggregator}
	lead := Lead{DB: databases.NewLeadDatabase(a.dbHelper), Config: a.Config, Uploader: NewCloudinaryUploader()}
	admin := Admin{DB: a.inventory}
	proxy := Proxy{UpstreamURL: a.Config.FeedBaseURL}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/api/feed-proxy", proxy.FeedProxyHandler).Methods("GET", "OPTIONS")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/vehicles", http.HandlerFunc(c.VehicleSearchHandler)).Methods("GET")
	apiCreate.Handle("/vehicles/{vehicle_id}", http.HandlerFunc(c.VehicleByIDHandler)).Methods("GET")

	apiCreate.Handle("/leads", http.HandlerFunc(lead.CreateLeadHandler)).Methods("POST")
	apiCreate.Handle("/leads/{lead_id}", http.HandlerFunc(lead.LeadByIDHandler)).Methods("GET")

	apiCreate.Handle("/admin/cars", api.Middleware(http.HandlerFunc(admin.CreateCarHandler))).Methods("POST")
	apiCreate.Handle("/admin/cars/export", api.Middleware(http.HandlerFunc(admin.ExportCarsHandler))).Methods("GET")
	apiCreate.Handle("/admin/cars/{car_id}", api.Middleware(http.HandlerFunc(admin.UpdateCarHandler))).Methods("PUT")
	apiCreate.Handle("/admin/cars/{car_id}", api.Middleware(http.HandlerFunc(admin.DeleteCarHandler))).Methods("DELETE")

	apiCreate.Handle("/admin/leads", api.Middleware(http.HandlerFunc(lead.ListLeadsHandler))).Methods("GET")
	apiCreate.Handle("/admin/leads/{lead_id}/status", api.Middleware(http.HandlerFunc(lead.UpdateLeadStatusHandler))).Methods("PUT")
	apiCreate.Handle("/admin/leads/{lead_id}", api.Middleware(http.HandlerFunc(lead.DeleteLeadHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect both data sources and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new lead store client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to lead store")
		return err
	}
	zap.S().Info("connected to the lead store")

	sqlDB, err := databases.NewPostgres(&a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to connect to inventory store")
		return err
	}
	zap.S().Info("connected to the inventory store")

	a.Feed = feed.New(&a.Config)
	a.inventory = databases.NewInventoryDatabase(sqlDB, dealership())
	a.aggregator = catalog.New(a.inventory, a.Feed, a.Config.CatalogSource)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// dealership is the contact block stamped onto inventory-store vehicles
func dealership() models.Dealer {
	return models.Dealer{
		Name:  "RD Group",
		Phone: "+39 0573 123456",
		Email: "info@rdgroupautomobili.it",
		Location: models.Location{
			Address:    "Via Fiorentina 331",
			City:       "Pistoia",
			Region:     "Toscana",
			PostalCode: "51100",
			Country:    "IT",
		},
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
