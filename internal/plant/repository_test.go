package plant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nerrad567/plantshop-core/internal/infrastructure/config"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/database"
	"github.com/nerrad567/plantshop-core/migrations"
)

// setupTestRepo opens a migrated SQLite file in a temp dir.
func setupTestRepo(t *testing.T) (*SQLiteRepository, *database.DB) {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "plants.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close() //nolint:errcheck // Test cleanup
	})

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewSQLiteRepository(db.DB), db
}

func countPlants(t *testing.T, db *database.DB) int {
	t.Helper()

	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM plants").Scan(&n); err != nil {
		t.Fatalf("counting plants: %v", err)
	}
	return n
}

func TestSQLiteRepository_ListEmpty(t *testing.T) {
	repo, _ := setupTestRepo(t)

	plants, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if plants == nil {
		t.Error("List() returned nil slice, want empty")
	}
	if len(plants) != 0 {
		t.Errorf("List() len = %d, want 0", len(plants))
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, Input{Name: "Fern", Image: "fern.png", Price: 12.5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID <= 0 {
		t.Errorf("Create() ID = %d, want positive", created.ID)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != *created {
		t.Errorf("Get() = %+v, want %+v", *got, *created)
	}
}

func TestSQLiteRepository_ListOrderedByID(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	names := []string{"Fern", "Cactus", "Aloe"}
	for i, name := range names {
		if _, err := repo.Create(ctx, Input{Name: name, Image: name + ".png", Price: float64(i)}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	plants, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(plants) != countPlants(t, db) {
		t.Errorf("List() len = %d, want row count %d", len(plants), countPlants(t, db))
	}
	for i, p := range plants {
		if p.Name != names[i] {
			t.Errorf("plants[%d].Name = %q, want %q", i, p.Name, names[i])
		}
		if i > 0 && p.ID <= plants[i-1].ID {
			t.Errorf("plants not ordered by id: %d after %d", p.ID, plants[i-1].ID)
		}
	}
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, Input{Name: "Fern", Image: "fern.png", Price: 12.5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, Input{Name: "Boston Fern", Image: "boston.png", Price: 0})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	want := Plant{ID: created.ID, Name: "Boston Fern", Image: "boston.png", Price: 0}
	if *updated != want {
		t.Errorf("Update() = %+v, want %+v", *updated, want)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != want {
		t.Errorf("Get() after update = %+v, want %+v", *got, want)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, Input{Name: "Fern", Image: "f", Price: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(ctx, Input{Name: "Cactus", Image: "c", Price: 2}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n := countPlants(t, db); n != 1 {
		t.Errorf("row count after delete = %d, want 1", n)
	}
	if _, err := repo.Get(ctx, first.ID); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrPlantNotFound", err)
	}
}

func TestSQLiteRepository_IDsNotReused(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, Input{Name: "Fern", Image: "f", Price: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	second, err := repo.Create(ctx, Input{Name: "Fern", Image: "f", Price: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("Create() reused deleted id %d", first.ID)
	}
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, Input{Name: "Fern", Image: "f", Price: 1}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	const missing = int64(999)

	t.Run("get", func(t *testing.T) {
		if _, err := repo.Get(ctx, missing); !errors.Is(err, ErrPlantNotFound) {
			t.Errorf("Get() error = %v, want ErrPlantNotFound", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		if _, err := repo.Update(ctx, missing, Input{Name: "X", Image: "x", Price: 1}); !errors.Is(err, ErrPlantNotFound) {
			t.Errorf("Update() error = %v, want ErrPlantNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, missing); !errors.Is(err, ErrPlantNotFound) {
			t.Errorf("Delete() error = %v, want ErrPlantNotFound", err)
		}
	})

	if n := countPlants(t, db); n != 1 {
		t.Errorf("row count = %d, want 1 (no mutation on missing id)", n)
	}
}

func TestSQLiteRepository_ClosedDatabase(t *testing.T) {
	repo, db := setupTestRepo(t)
	db.Close() //nolint:errcheck // Forcing storage failure

	ctx := context.Background()
	if _, err := repo.List(ctx); err == nil {
		t.Error("List() expected error on closed database")
	}
	if _, err := repo.Create(ctx, Input{Name: "Fern", Image: "f", Price: 1}); err == nil || errors.Is(err, ErrPlantNotFound) {
		t.Errorf("Create() error = %v, want storage error", err)
	}
	if err := repo.Delete(ctx, 1); err == nil || errors.Is(err, ErrPlantNotFound) {
		t.Errorf("Delete() error = %v, want storage error", err)
	}
}
