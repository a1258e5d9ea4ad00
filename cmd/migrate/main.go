package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Applies migrations/*.sql in lexical order, recording applied files in the
// schema_migrations table so re-runs are incremental.
func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	dir := migrationDir()
	if err := ensureTable(ctx, pool); err != nil {
		log.Fatalf("migrations table: %v", err)
	}

	for _, name := range collectFiles(dir) {
		applied, err := alreadyApplied(ctx, pool, name)
		if err != nil {
			log.Fatalf("check %s: %v", name, err)
		}
		if applied {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Fatalf("read %s: %v", name, err)
		}

		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			log.Fatalf("apply %s: %v", name, err)
		}
		if _, err := pool.Exec(ctx, `insert into schema_migrations (filename) values ($1);`, name); err != nil {
			log.Fatalf("record %s: %v", name, err)
		}
		log.Printf("applied %s", name)
	}

	log.Println("migrations up to date")
}

func migrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

func collectFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func ensureTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
create table if not exists schema_migrations (
    filename text primary key,
    applied_at timestamptz not null default now()
);
`)
	return err
}

func alreadyApplied(ctx context.Context, pool *pgxpool.Pool, name string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`select exists (select 1 from schema_migrations where filename = $1);`, name).
		Scan(&exists)
	return exists, err
}
