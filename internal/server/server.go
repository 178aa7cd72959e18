//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bikerental/internal/audit"
	"bikerental/internal/metrics"
	"bikerental/internal/store"
)

type Store interface {
	AddBike(color string) (store.Bike, error)
	AddClient(name, email, cpf string) (store.Client, error)
	ListBikes() []store.Bike
	AddRental(model, email string, quantity int, family bool) ([]store.Rental, error)
	CalculateRental(email string) (float64, error)
}

type Server struct {
	store        Store
	logger       *zap.Logger
	server       *http.Server
	AuditManager *audit.Manager
}

func New(st Store, auditManager *audit.Manager, logger *zap.Logger) *Server {
	return &Server{
		store:        st,
		logger:       logger,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.auditMiddleware)

	router.HandleFunc("/bikes", s.handleAddBike).Methods(http.MethodPost)
	router.HandleFunc("/bikes", s.handleListBikes).Methods(http.MethodGet)
	router.HandleFunc("/clients", s.handleAddClient).Methods(http.MethodPost)
	router.HandleFunc("/rentals", s.handleAddRental).Methods(http.MethodPost)
	router.HandleFunc("/settlements", s.handleSettle).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the store's error kinds onto HTTP statuses.
// Unexpected errors stay 500.
func statusForError(err error) int {
	switch store.KindOf(err) {
	case store.InvalidFormat, store.InvalidModel, store.InvalidQuantity,
		store.InvalidFamilySize, store.InvalidInterval:
		return http.StatusBadRequest
	case store.UnknownClient:
		return http.StatusNotFound
	case store.DuplicateClient, store.InsufficientInventory:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) handleAddBike(w http.ResponseWriter, r *http.Request) {
	var bikeRequest struct {
		Color string `json:"color"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bikeRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bike, err := s.store.AddBike(bikeRequest.Color)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("add_bike").Inc()
		respondError(w, statusForError(err), err.Error())
		return
	}

	metrics.BikesAddedTotal.Inc()
	s.updateAvailableBikes()
	respondJSON(w, http.StatusCreated, bike)
}

func (s *Server) handleListBikes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.ListBikes())
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var clientRequest struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		CPF   string `json:"cpf"`
	}

	if err := json.NewDecoder(r.Body).Decode(&clientRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := s.store.AddClient(clientRequest.Name, clientRequest.Email, clientRequest.CPF)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("add_client").Inc()
		respondError(w, statusForError(err), err.Error())
		return
	}

	metrics.ClientsRegisteredTotal.Inc()
	respondJSON(w, http.StatusCreated, client)
}

func (s *Server) handleAddRental(w http.ResponseWriter, r *http.Request) {
	var rentalRequest struct {
		Model    string `json:"model"`
		Email    string `json:"email"`
		Quantity int    `json:"quantity"`
		Family   bool   `json:"family"`
	}

	if err := json.NewDecoder(r.Body).Decode(&rentalRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rentals, err := s.store.AddRental(rentalRequest.Model, rentalRequest.Email, rentalRequest.Quantity, rentalRequest.Family)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("add_rental").Inc()
		respondError(w, statusForError(err), err.Error())
		return
	}

	metrics.RentalsCreatedTotal.Add(float64(len(rentals)))
	s.updateAvailableBikes()
	respondJSON(w, http.StatusCreated, rentals)
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var settleRequest struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&settleRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	amount, err := s.store.CalculateRental(settleRequest.Email)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("settle").Inc()
		respondError(w, statusForError(err), err.Error())
		return
	}

	metrics.SettlementsTotal.Inc()
	s.updateAvailableBikes()
	respondJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}

func (s *Server) updateAvailableBikes() {
	available := 0
	for _, bike := range s.store.ListBikes() {
		if bike.Available {
			available++
		}
	}
	metrics.AvailableBikes.Set(float64(available))
}
