package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/api"
	"github.com/hmcts/et-multiples-api/api/scheduler"
	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/documents"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
	"github.com/hmcts/et-multiples-api/notifications"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
	Service  *multiples.Service
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:        databases.NewCaseworkerDatabase(a.dbHelper),
		JWTSecret: a.Config.JWTSecret,
	}
	m.SetupGoGuardian()

	// multiple references carry a slash (245000/2024) and arrive URL-encoded
	r := mux.NewRouter().UseEncodedPath()
	r.Use(api.MetricsMiddleware)
	r.Use(api.TimeoutMiddleware(2 * time.Minute))

	mh := MultipleHandler{Service: a.Service}
	th := TransferHandler{Service: a.Service}
	dh := DocumentHandler{Service: a.Service}
	sc := SingleCase{DB: databases.NewSingleCaseDatabase(a.dbHelper)}
	metrics := MetricsHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/multiples", api.Middleware(http.HandlerFunc(mh.CreateMultipleHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}", api.Middleware(http.HandlerFunc(mh.GetMultipleHandler))).Methods("GET")
	apiCreate.Handle("/multiples/{multiple_reference}/cases", api.Middleware(http.HandlerFunc(mh.AmendCasesHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/cases", api.Middleware(http.HandlerFunc(mh.RemoveCasesHandler))).Methods("DELETE")
	apiCreate.Handle("/multiples/{multiple_reference}/sub-multiple", api.Middleware(http.HandlerFunc(mh.MoveSubMultipleHandler))).Methods("PUT")
	apiCreate.Handle("/multiples/{multiple_reference}/pre-accept", api.Middleware(http.HandlerFunc(mh.PreAcceptHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/batch-update", api.Middleware(http.HandlerFunc(mh.BatchUpdateHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/close", api.Middleware(http.HandlerFunc(mh.CloseMultipleHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/fix", api.Middleware(http.HandlerFunc(mh.FixMultipleHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/flags", api.Middleware(http.HandlerFunc(mh.RefreshFlagsHandler))).Methods("GET")
	apiCreate.Handle("/multiples/{multiple_reference}/transfer", api.Middleware(http.HandlerFunc(th.TransferHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/transfer-country", api.Middleware(http.HandlerFunc(th.TransferCountryHandler))).Methods("POST")
	apiCreate.Handle("/multiples/{multiple_reference}/documents", api.Middleware(http.HandlerFunc(dh.GenerateDocumentsHandler))).Methods("POST")

	apiCreate.Handle("/cases/{case_reference}", api.Middleware(http.HandlerFunc(sc.CaseByReferenceHandler))).Methods("GET")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(sc.CasesByMultipleHandler))).Methods("GET")

	apiCreate.Handle("/metrics/summary", api.Middleware(http.HandlerFunc(metrics.GetMetricsSummary))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("et-multiples-api has connected to the database")

	renderer := documents.NewHTTPRenderer(a.Config.RendererURL)

	var artifacts documents.Store
	if a.Config.CloudinaryURL != "" {
		artifacts, err = documents.NewCloudinaryStore(a.Config.CloudinaryURL)
		if err != nil {
			zap.S().With(err).Error("failed to initialize artifact store")
			return err
		}
	}

	var notifier notifications.Notifier
	if a.Config.SendgridAPIKey != "" {
		notifier = notifications.NewSendgridNotifier(a.Config.SendgridAPIKey, a.Config.NotifyFrom)
	}

	a.Service = multiples.NewService(&a.Config, a.dbHelper, renderer, artifacts, notifier)

	// nightly ledger audit
	s := scheduler.NewScheduler(
		databases.NewSingleCaseDatabase(a.dbHelper),
		databases.NewMultipleDatabase(a.dbHelper),
		databases.NewAuditLockDatabase(a.dbHelper),
		&a.Config,
	)
	s.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
