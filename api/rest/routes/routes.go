package routes

import (
	"sched-sim/api/rest/handlers"
	"sched-sim/core/feed"
	"sched-sim/core/repository"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *mux.Router, db *repository.DB, folder *feed.Folder) {
	runRepo := repository.NewRunRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	folder.AddSink(feedRepo)

	simHandler := handlers.NewSimulationHandler(runRepo)
	feedHandler := handlers.NewFeedHandler(folder, feedRepo)

	api := r.PathPrefix("/v1").Subrouter()

	// Simulation endpoints
	api.HandleFunc("/simulations", simHandler.SubmitSimulation).Methods("POST")
	api.HandleFunc("/simulations/compare", simHandler.CompareSimulations).Methods("POST")
	api.HandleFunc("/simulations", simHandler.ListRuns).Methods("GET")
	api.HandleFunc("/simulations/{id}", simHandler.GetRun).Methods("GET")
	api.HandleFunc("/simulations/{id}/records", simHandler.GetRecords).Methods("GET")
	api.HandleFunc("/simulations/{id}/statistics", simHandler.GetStatistics).Methods("GET")

	// Live sensor feed
	api.HandleFunc("/feed", feedHandler.Ingest).Methods("GET")
	api.HandleFunc("/feed/records", feedHandler.Records).Methods("GET")
	api.HandleFunc("/feed/statistics", feedHandler.Statistics).Methods("GET")
}
