package leads

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	second := CreateLeadDTO{Name: "Second", Email: "second@example.com"}.ToLead(base.Add(time.Minute))
	first := CreateLeadDTO{Name: " First ", Email: "first@example.com", InterestedIn: "first-home"}.ToLead(base)

	for _, lead := range []*Lead{second, first} {
		if err := repo.Create(ctx, lead); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := repo.Create(ctx, first); err == nil {
		t.Error("expected duplicate ID to be rejected")
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(got))
	}
	if got[0].Name != "First" {
		t.Errorf("expected leads ordered by creation time, got %q first", got[0].Name)
	}
	if got[0].ID == got[1].ID {
		t.Error("expected unique lead IDs")
	}
}

func TestGormRepositoryClose(t *testing.T) {
	// no ping, so no server is needed to build the pool
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=test dbname=test sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	repo := NewGormRepository(db)

	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	if err := sqlDB.Ping(); err == nil {
		t.Error("expected the pool to be closed")
	}
}
