package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	guestDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/guest"
)

// GuestModel is the GORM model for the guests table. The unique index
// on email backs the find-or-create dedup in the guest resolver.
type GuestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(200);not null"`
	Email       string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Nationality string    `gorm:"type:varchar(100)"`
	CountryFlag string    `gorm:"type:varchar(200)"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB, log *zap.Logger) *GormGuestRepository {
	return &GormGuestRepository{db: db, log: log}
}

// FindByEmail retrieves every guest with the given email, oldest first.
func (r *GormGuestRepository) FindByEmail(ctx context.Context, email string) ([]guestDomain.Guest, error) {
	var models []GuestModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to find guests by email", zap.Error(err))
		return nil, domain.NewStorageError("guests could not be loaded", err)
	}

	guests := make([]guestDomain.Guest, len(models))
	for i, m := range models {
		guests[i] = toDomainGuest(&m)
	}
	return guests, nil
}

// Create persists a new guest. A duplicate email surfaces as a
// ConflictError so the resolver can fall back to the existing record.
func (r *GormGuestRepository) Create(ctx context.Context, g *guestDomain.Guest) error {
	model := toGuestModel(g)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("a guest with this email already exists")
		}
		r.log.Error("failed to create guest", zap.Error(err))
		return domain.NewStorageError("guest could not be created", err)
	}
	return nil
}

// --- Conversions ---

func toGuestModel(g *guestDomain.Guest) *GuestModel {
	return &GuestModel{
		ID:          g.ID,
		FullName:    g.FullName,
		Email:       g.Email,
		Nationality: g.Nationality,
		CountryFlag: g.CountryFlag,
	}
}

func toDomainGuest(m *GuestModel) guestDomain.Guest {
	return guestDomain.Guest{
		ID:          m.ID,
		FullName:    m.FullName,
		Email:       m.Email,
		Nationality: m.Nationality,
		CountryFlag: m.CountryFlag,
	}
}
