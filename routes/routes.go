package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/netzero/handlers"
	"p9e.in/netzero/middleware"
)

func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/api/v1/register", handlers.Register).Methods("POST")
	r.HandleFunc("/api/v1/login", handlers.Login).Methods("POST")
	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	}).Methods("GET")

	// Protected API routes (require authentication)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	// Sites (operating units)
	api.HandleFunc("/sites", handlers.GetAllSites).Methods("GET")
	api.HandleFunc("/sites", handlers.CreateSite).Methods("POST")
	api.HandleFunc("/sites/batch", handlers.BatchSites).Methods("POST")
	api.HandleFunc("/sites/{id}", handlers.GetSite).Methods("GET")
	api.HandleFunc("/sites/{id}", handlers.UpdateSite).Methods("PUT")
	api.HandleFunc("/sites/{id}", handlers.DeleteSite).Methods("DELETE")

	// Scope 1/2 emission records
	api.HandleFunc("/emissions", handlers.ListEmissions).Methods("GET")
	api.HandleFunc("/emissions", handlers.CreateEmission).Methods("POST")
	api.HandleFunc("/emissions/bulk", handlers.BulkEmissions).Methods("POST")
	api.HandleFunc("/emissions/export", handlers.ExportEmissions).Methods("GET")

	// Scope 3 value-chain records
	api.HandleFunc("/scope3", handlers.ListValueChain).Methods("GET")
	api.HandleFunc("/scope3", handlers.CreateValueChainEntry).Methods("POST")
	api.HandleFunc("/scope3/bulk", handlers.BulkValueChain).Methods("POST")

	// Spreadsheet imports
	api.HandleFunc("/import/emissions", handlers.ImportEmissions).Methods("POST")
	api.HandleFunc("/import/scope3", handlers.ImportValueChain).Methods("POST")

	// Analytics
	api.HandleFunc("/analytics/summary", handlers.GetAnalyticsSummary).Methods("GET")
	api.HandleFunc("/analytics/detailed", handlers.GetDetailedAnalytics).Methods("GET")

	// Scenario planning
	api.HandleFunc("/scenarios", handlers.ListScenarios).Methods("GET")
	api.HandleFunc("/scenarios", handlers.CreateScenario).Methods("POST")
	api.HandleFunc("/scenarios/{id}", handlers.UpdateScenario).Methods("PUT")
	api.HandleFunc("/scenarios/{id}", handlers.DeleteScenario).Methods("DELETE")

	// Carbon credit ledger
	api.HandleFunc("/carbon-credits", handlers.ListCreditLots).Methods("GET")
	api.HandleFunc("/carbon-credits", handlers.IssueCreditLot).Methods("POST")
	api.HandleFunc("/carbon-credits/retire", handlers.RetireCredits).Methods("POST")

	// Renewables
	api.HandleFunc("/renewables/assets", handlers.ListRenewableAssets).Methods("GET")
	api.HandleFunc("/renewables/assets", handlers.CreateRenewableAsset).Methods("POST")
	api.HandleFunc("/renewables/generation", handlers.ListRenewableGeneration).Methods("GET")
	api.HandleFunc("/renewables/generation", handlers.CreateRenewableGeneration).Methods("POST")

	// Reports
	api.HandleFunc("/reports/generate", handlers.GenerateReport).Methods("POST")

	return r
}
