package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-reservations/internal/config"
	"ms-reservations/internal/database/migrations"
)

func main() {
	direction := flag.String("direction", "up", "up, down or version")
	dir := flag.String("dir", "./migrations", "directory with migration files")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.Options{MigrationsDir: *dir})

	switch *direction {
	case "up":
		if err := runner.Up(); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Println("migrations applied")
	case "down":
		if err := runner.Down(); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Println("rolled back one migration")
	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			log.Fatalf("failed to read version: %v", err)
		}
		log.Printf("schema version %d (dirty=%v)", version, dirty)
	default:
		log.Fatalf("unknown direction %q", *direction)
	}
}
