package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	cabinDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/cabin"
)

// CabinModel is the GORM model for the cabins table.
type CabinModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	MaxCapacity  int       `gorm:"not null"`
	RegularPrice float64   `gorm:"not null"`
	Discount     float64   `gorm:"not null;default:0"`
	Image        string    `gorm:"type:text"`
	Description  string    `gorm:"type:text"`
}

// TableName returns the table name for the GORM model.
func (CabinModel) TableName() string {
	return "cabins"
}

// GormCabinRepository is the GORM-based implementation of cabin.Repository.
type GormCabinRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormCabinRepository creates a new GormCabinRepository.
func NewGormCabinRepository(db *gorm.DB, log *zap.Logger) *GormCabinRepository {
	return &GormCabinRepository{db: db, log: log}
}

// FindByName retrieves every cabin with the given name.
func (r *GormCabinRepository) FindByName(ctx context.Context, name string) ([]cabinDomain.Cabin, error) {
	var models []CabinModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Find(&models).Error; err != nil {
		r.log.Error("failed to find cabins by name", zap.String("name", name), zap.Error(err))
		return nil, domain.NewStorageError("cabins could not be loaded", err)
	}

	cabins := make([]cabinDomain.Cabin, len(models))
	for i, m := range models {
		cabins[i] = toDomainCabin(&m)
	}
	return cabins, nil
}

func toDomainCabin(m *CabinModel) cabinDomain.Cabin {
	return cabinDomain.Cabin{
		ID:           m.ID,
		Name:         m.Name,
		MaxCapacity:  m.MaxCapacity,
		RegularPrice: m.RegularPrice,
		Discount:     m.Discount,
		Image:        m.Image,
		Description:  m.Description,
	}
}
