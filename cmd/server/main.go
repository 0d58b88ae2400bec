package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/Bejayyyy/Rentalss-sub001/internal/api"
	"github.com/Bejayyyy/Rentalss-sub001/internal/auth"
	"github.com/Bejayyyy/Rentalss-sub001/internal/logging"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
	"github.com/Bejayyyy/Rentalss-sub001/internal/service"
	"github.com/Bejayyyy/Rentalss-sub001/internal/storage"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		os.Exit(1)
	}
	defer logging.Close()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		logging.Fatal("failed to open DB", "error", err.Error())
	}
	if err := db.Ping(); err != nil {
		logging.Fatal("failed to connect to DB", "error", err.Error())
	}

	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	sender := service.NewSenderService()
	inventorySvc := service.NewInventoryService(vehicleRepo)
	availabilitySvc := service.NewAvailabilityService(vehicleRepo, bookingRepo)
	bookingSvc := service.NewBookingService(vehicleRepo, bookingRepo, availabilitySvc, sender)
	jobSvc := service.NewJobService(jobRepo, availabilitySvc)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	docStorage, err := storage.NewLocalStorage(uploadDir, baseURL)
	if err != nil {
		logging.Fatal("failed to initialize document storage", "error", err.Error())
	}

	vehicleHandler := api.NewVehicleHandler(inventorySvc)
	bookingHandler := api.NewBookingHandler(availabilitySvc, bookingSvc)
	adminHandler := api.NewAdminHandler(bookingSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	uploadHandler := api.NewUploadHandler(docStorage)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}/availability", bookingHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}/colors", bookingHandler.ColorGroups).Methods("GET")
	r.HandleFunc("/api/variants/{id}/booked-dates", bookingHandler.BookedDates).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/uploads/identity-document", uploadHandler.UploadIdentityDocument).Methods("POST")
	r.HandleFunc("/api/uploads/{key}", uploadHandler.DownloadIdentityDocument).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}/transition", adminHandler.TransitionBooking).Methods("POST")

	// Status sweeps
	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompleteElapsedBookings(context.Background()); err != nil {
			logging.Error("complete-elapsed sweep failed", "error", err.Error())
		}
	})
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CancelStalePending(context.Background()); err != nil {
			logging.Error("stale-pending sweep failed", "error", err.Error())
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logging.Info("server starting", "port", port, "environment", appEnv)
	if err := http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))); err != nil {
		logging.Fatal("server stopped", "error", err.Error())
	}
}
