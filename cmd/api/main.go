package main

import (
	"fmt"
	"log"
	"os"

	"sq-limit/internal/api/handlers"
	"sq-limit/internal/api/middleware"
	"sq-limit/internal/spectrum"
	"sq-limit/internal/sweep"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	spectrumPath := os.Getenv("SPECTRUM_FILE")
	if spectrumPath == "" {
		spectrumPath = "./SolarSpectrum_AM15G.txt"
	}
	delimiter := os.Getenv("SPECTRUM_DELIMITER")

	// The spectrum is loaded once and is immutable; a bad table is fatal.
	curve, err := spectrum.Load(spectrumPath, delimiter)
	if err != nil {
		log.Fatalf("Failed to load spectrum: %v", err)
	}
	log.Printf("Loaded spectrum %s: %d samples, %.1f W/m2, bandgap domain [%.3f, %.3f] eV",
		spectrumPath, curve.Len(), curve.Power, curve.BandgapMin, curve.BandgapMax)

	engine := sweep.New(curve)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	limitHandler := handlers.NewLimitHandler(engine)
	stackHandler := handlers.NewStackHandler(engine)
	spectrumHandler := handlers.NewSpectrumHandler(curve)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/limit", limitHandler.Run)
		api.POST("/stack", stackHandler.Combine)
		api.GET("/spectrum", spectrumHandler.Get)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
