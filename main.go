package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/inspectsysbackend/config"
	"github.com/camden-git/inspectsysbackend/database"
	"github.com/camden-git/inspectsysbackend/handlers"
	"github.com/camden-git/inspectsysbackend/media"
	"github.com/camden-git/inspectsysbackend/repository"
	"github.com/camden-git/inspectsysbackend/services"
	"github.com/camden-git/inspectsysbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.PhotoBackupsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypePhotoBackup: filepath.Base(cfg.PhotoBackupsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	log.Printf("Initializing photo backup worker pool (Workers: %d, Queue Size: %d)...", cfg.NumBackupWorkers, cfg.BackupQueueSize)
	backupWorker := workers.NewBackupWorker(mediaStore, cfg.BackupQueueSize, cfg.NumBackupWorkers)
	defer backupWorker.Stop()

	recordService := services.NewRecordService(db)
	recordService.SetBackupQueue(backupWorker)
	if err := recordService.EnsurePreferences(); err != nil {
		log.Fatalf("FATAL: Failed to initialize preferences: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing photo backups in: %s", cfg.PhotoBackupsPath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	photoHandler := &handlers.PhotoHandler{Store: recordService}
	inspectionHandler := &handlers.InspectionHandler{Store: recordService}
	preferencesHandler := &handlers.PreferencesHandler{Store: recordService}
	projectHandler := &handlers.ProjectHandler{Store: recordService, Reports: repository.NewReportRepository(db)}

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.ListProjects)
			r.Put("/", projectHandler.CacheProjects)
			r.Route("/{project_id}", func(r chi.Router) {
				r.Get("/summary", projectHandler.ProjectSummary)
				r.Route("/photos", func(r chi.Router) {
					r.Post("/", photoHandler.SavePhoto)
					r.Get("/", photoHandler.ListPhotos)
					r.Route("/{photo_id}", func(r chi.Router) {
						r.Get("/", photoHandler.GetPhoto)
						r.Delete("/", photoHandler.RemovePhoto)
						r.Put("/annotations", photoHandler.ReplaceAnnotations)
					})
				})
				r.Route("/autosave", func(r chi.Router) {
					r.Put("/", inspectionHandler.PutAutoSave)
					r.Get("/", inspectionHandler.GetAutoSave)
					r.Delete("/", inspectionHandler.DeleteAutoSave)
				})
			})
		})

		r.Route("/inspections", func(r chi.Router) {
			r.Post("/", inspectionHandler.SaveDraft)
			r.Get("/", inspectionHandler.ListDrafts)
			r.Post("/{inspection_id}/complete", inspectionHandler.CompleteInspection)
		})

		r.Get("/autosave/latest", inspectionHandler.LatestAutoSave)

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", preferencesHandler.GetPreferences)
			r.Put("/", preferencesHandler.UpdatePreferences)
		})

		backupSubDir := filepath.Base(cfg.PhotoBackupsPath)
		r.Get(fmt.Sprintf("/%s/*", backupSubDir), handlers.AssetServer(cfg.MediaStoragePath, backupSubDir))
		log.Printf("Registered photo backup server at /%s/*", backupSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
