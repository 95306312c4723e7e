package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"protein-explorer/handlers"
	"protein-explorer/logging"
	"protein-explorer/services"
	"protein-explorer/utils"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Protein Explorer...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Infof("Event ID: ENV_LOAD_SKIPPED, Description: No .env file loaded: %v", err)
	}

	species, err := strconv.Atoi(envOrDefault("STRING_SPECIES", "9606"))
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: STRING_SPECIES must be an integer: %v", err)
	}

	httpClient := utils.NewHTTPClient()
	uniprotService := services.NewUniProtService(envOrDefault("UNIPROT_BASE_URL", "https://rest.uniprot.org"), httpClient)
	stringService := services.NewStringService(envOrDefault("STRING_BASE_URL", "https://string-db.org"), species, httpClient)
	structureService := services.NewStructureService(
		envOrDefault("PDB_BASE_URL", "https://files.rcsb.org"),
		envOrDefault("ALPHAFOLD_BASE_URL", "https://alphafold.ebi.ac.uk"),
		httpClient,
	)

	proteinHandler := handlers.NewProteinHandler(uniprotService, stringService, structureService)
	pageHandler, err := handlers.NewPageHandler()
	if err != nil {
		logging.Logger.Fatalf("Event ID: TEMPLATE_LOAD_FAILED, Description: Failed to load page template: %v", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/", pageHandler.Index).Methods("GET")
	r.HandleFunc("/api/protein/{id}", proteinHandler.GetProtein).Methods("GET")
	r.HandleFunc("/api/protein/{id}/interactions", proteinHandler.GetInteractions).Methods("GET")
	r.HandleFunc("/api/protein/{id}/network.png", proteinHandler.GetNetworkImage).Methods("GET")
	r.HandleFunc("/api/protein/{id}/structure", proteinHandler.GetStructure).Methods("GET")
	r.HandleFunc("/healthz", handlers.Healthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	corsRouter := enableCORS(r)

	serverPort := envOrDefault("SERVER_PORT", "8080")
	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
