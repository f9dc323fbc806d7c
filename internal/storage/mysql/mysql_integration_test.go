//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"casarural/internal/domain"
	mysqlstore "casarural/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=casarural",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "casarural")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// Exercises the full store contract against a real MySQL; the scenario
// mirrors the Redis store tests so both backends are held to the same
// observable behavior.
func TestStore_MySQL_CRUD(t *testing.T) {
	db := startMySQL(t)
	store := mysqlstore.New(db)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.Fields{
		Name: "Ana", Email: "a@x.com", Phone: "555", Guests: 2,
		DateIn: "2024-06-01", DateOut: "2024-06-05", Price: 300,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(all))
	}
	b := all[0]
	if b.ID != id || b.Name != "Ana" || b.DateIn != "2024-06-01" || b.DateOut != "2024-06-05" || b.Price != 300 {
		t.Fatalf("round trip mismatch: %+v", b)
	}

	ranges, err := store.ListBookedDateRanges(ctx)
	if err != nil {
		t.Fatalf("ListBookedDateRanges: %v", err)
	}
	if len(ranges) != 1 || ranges[0].StartDate != "2024-06-01" || ranges[0].EndDate != "2024-06-05" {
		t.Fatalf("unexpected ranges: %+v", ranges)
	}

	// partial update
	guests := 4
	if err := store.Update(ctx, id, domain.Patch{Guests: &guests}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	all, _ = store.ListAll(ctx)
	if all[0].Guests != 4 || all[0].Name != "Ana" {
		t.Fatalf("partial update wrong: %+v", all[0])
	}

	// no-op update on an existing row is still a success
	if err := store.Update(ctx, id, domain.Patch{Guests: &guests}); err != nil {
		t.Fatalf("no-op Update: %v", err)
	}

	// unknown id
	if err := store.Update(ctx, "999999", domain.Patch{Guests: &guests}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update unknown id: expected ErrNotFound, got %v", err)
	}

	// delete twice
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if all, _ := store.ListAll(ctx); len(all) != 0 {
		t.Fatalf("booking still listed after delete")
	}
	if err := store.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}
