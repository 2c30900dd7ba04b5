package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " ") {
		log.Fatal("migration name must not contain spaces")
	}

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.%s.sql", version, *name, direction))
		if _, err := os.Stat(path); err == nil {
			log.Fatalf("file already exists: %s", path)
		}
		content := fmt.Sprintf("-- %s migration\n", direction)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("create %s migration: %v", direction, err)
		}
		log.Printf("created %s", path)
	}
}
