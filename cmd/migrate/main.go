package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"bananabill/internal/config"
)

const usage = "usage: migrate up|down|steps N|version"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("opening migration source: %v", err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "up":
		report(m.Up(), "schema migrated up")

	case "down":
		report(m.Down(), "schema migrated down")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal("steps requires a count, e.g. migrate steps -1")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid step count %q: %v", os.Args[2], err)
		}
		report(m.Steps(n), fmt.Sprintf("applied %d migration steps", n))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("reading schema version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n%s\n", cmd, usage)
		os.Exit(1)
	}
}

func report(err error, done string) {
	switch {
	case err == nil:
		log.Println(done)
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("schema already up to date")
	default:
		log.Fatalf("migration failed: %v", err)
	}
}
