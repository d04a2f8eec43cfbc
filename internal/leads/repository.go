package leads

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Repository stores contact form leads
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]Lead, error)
}

// GormRepository persists leads in postgres
type GormRepository struct {
	DB *gorm.DB
}

// NewGormRepository wraps an open connection
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

// Open connects to postgres and migrates the leads table
func Open(dsn string) (*GormRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Lead{}); err != nil {
		return nil, fmt.Errorf("failed to migrate leads: %w", err)
	}
	return NewGormRepository(db), nil
}

// Close releases the underlying connection pool
func (r *GormRepository) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

func (r *GormRepository) Create(ctx context.Context, lead *Lead) error {
	return r.DB.WithContext(ctx).Create(lead).Error
}

func (r *GormRepository) List(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	err := r.DB.WithContext(ctx).Order("created_at").Find(&leads).Error
	return leads, err
}

// MemoryRepository keeps leads in process memory
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]Lead
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]Lead)}
}

func (r *MemoryRepository) Create(_ context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[lead.ID]; exists {
		return fmt.Errorf("lead %s already exists", lead.ID)
	}
	r.data[lead.ID] = *lead
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Lead, 0, len(r.data))
	for _, l := range r.data {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
