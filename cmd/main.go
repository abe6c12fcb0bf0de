package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"arbatai/internal/handlers"
	"arbatai/internal/middleware"
	"arbatai/internal/repositories"
	"arbatai/internal/services"
)

const version = "1.0.0"

func main() {
	// Catalog storage
	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "data/catalog.json" // Default catalog location
	}

	// Backoffice configuration
	password := os.Getenv("BACKOFFICE_PASSWORD")
	if password == "" {
		log.Fatal("BACKOFFICE_PASSWORD environment variable is required")
	}
	sessionSecret := os.Getenv("BACKOFFICE_SESSION_SECRET") // Optional, defaults to password

	// Session cookies are Secure everywhere except local development
	secureCookies := os.Getenv("APP_ENV") != "development"

	// Create repositories
	catalogRepo := repositories.NewFileCatalogRepository(catalogPath)

	// Create services
	catalogSvc := services.NewCatalogService(catalogRepo)
	authSvc, err := services.NewAuthService(services.AuthConfig{
		Password:      password,
		SessionSecret: sessionSecret,
		SecureCookies: secureCookies,
	})
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	categoryHandlers := handlers.NewCategoryHandlers(catalogSvc)
	productHandlers := handlers.NewProductHandlers(catalogSvc)
	storefrontHandlers := handlers.NewStorefrontHandlers(catalogSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoint (no auth required)
	e.GET("/health", handlers.HealthCheck)

	// Public storefront routes (no auth required)
	e.GET("/api/catalog", storefrontHandlers.GetCatalog)

	// Backoffice routes
	backoffice := e.Group("/backoffice")
	backoffice.POST("/login", authHandlers.Login)
	backoffice.POST("/logout", authHandlers.Logout)

	// Protected routes (require a valid session cookie)
	protected := backoffice.Group("")
	protected.Use(middleware.RequireSession(authSvc))

	protected.POST("/categories", categoryHandlers.CreateCategory)
	protected.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	protected.POST("/products", productHandlers.CreateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Arbatai backoffice v%s starting on port %d (catalog: %s)", version, port, catalogPath)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
