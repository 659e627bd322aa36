package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"meditech-backend/internal/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Collection names
const (
	ContactCollection = "contacts"
	ProductCollection = "demos"
)

// Init initializes the MongoDB connection. The client is created once and
// reused for the lifetime of the process.
func Init() error {
	cfg := config.Get()

	log.SetPrefix("[DB] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("Connecting to MongoDB...")
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	db = client.Database(cfg.Database.Name)

	// Test connection
	if err := testConnection(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	log.Printf("Database connected: %s", cfg.Database.Name)
	return nil
}

// testConnection pings the primary
func testConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// GetDatabase returns the database handle
func GetDatabase() *mongo.Database {
	if db == nil {
		log.Fatal("Database not initialized. Call database.Init() first.")
	}
	return db
}

// HealthCheck performs a database health check
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("database not initialized")
	}
	return testConnection()
}

// Close disconnects the client
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
