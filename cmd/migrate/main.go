package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/meeting-actions/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-actions/pkg/config"
)

func main() {
	steps := flag.Int("steps", 0, "maximum number of migrations to apply (0 = all for up, 1 for down)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-steps N] up|down|status\n")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	// Get the underlying SQL database connection from GORM
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	migrations := database.Migrations()

	switch command {
	case "up":
		log.Println("🔄 Applying migrations...")
		n, err := migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Up, *steps)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("✅ Successfully applied %d migration(s)!", n)

	case "down":
		max := *steps
		if max == 0 {
			max = 1
		}
		log.Printf("⏪ Rolling back %d migration(s)...", max)
		n, err := migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Down, max)
		if err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
		log.Printf("✅ Rolled back %d migration(s)", n)

	case "status":
		records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
		if err != nil {
			log.Fatalf("Failed to read migration records: %v", err)
		}
		if len(records) == 0 {
			log.Println("📭 No migrations applied")
		}
		for _, r := range records {
			log.Printf("📌 %s applied at %s", r.Id, r.AppliedAt.UTC().Format("2006-01-02 15:04:05"))
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}
