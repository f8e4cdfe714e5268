package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kisinja/smart-farmer/auth"
	"github.com/kisinja/smart-farmer/cache"
	"github.com/kisinja/smart-farmer/events"
	"github.com/kisinja/smart-farmer/models"
	"github.com/kisinja/smart-farmer/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.ShippingInfo{},
		&models.OrderItem{},
		&models.BlogPost{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if os.Getenv("SEED_DEFAULT_DATA") == "true" {
		if err := models.SeedDefaultCategories(db); err != nil {
			log.Fatalf("❌ Category seeding failed: %v", err)
		}
		log.Println("✅ Default categories seeded")
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Optional infrastructure; each disables itself when unconfigured.
	deps := routes.Deps{
		Cache: cache.NewProductCache(os.Getenv("REDIS_ADDR")),
	}

	if issuer := os.Getenv("KINDE_ISSUER_URL"); issuer != "" {
		deps.Kinde = auth.NewClient(issuer, os.Getenv("KINDE_CLIENT_ID"), os.Getenv("KINDE_CLIENT_SECRET"))
	}

	publisher, err := events.NewPublisher(os.Getenv("AMQP_URL"))
	if err != nil {
		log.Printf("⚠️ AMQP unavailable, order events disabled: %v", err)
	} else {
		deps.Events = publisher
		defer publisher.Close()
	}

	// Setup routes
	routes.SetupRoutes(r, db, deps)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
