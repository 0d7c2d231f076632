package repository

import (
	"errors"
	"time"

	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	bookingDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;index"`
	StartDate    time.Time `gorm:"type:date;not null;index"`
	EndDate      time.Time `gorm:"type:date;not null;index"`
	NumNights    int       `gorm:"not null"`
	NumGuests    int       `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	CabinPrice   float64   `gorm:"not null"`
	ExtrasPrice  float64   `gorm:"not null;default:0"`
	TotalPrice   float64   `gorm:"not null"`
	HasBreakfast bool      `gorm:"not null;default:false"`
	IsPaid       bool      `gorm:"not null;default:false"`
	Observations string    `gorm:"type:text"`
	CabinID      uuid.UUID `gorm:"type:uuid;not null;index"`
	GuestID      uuid.UUID `gorm:"type:uuid;not null;index"`

	Cabin *CabinModel `gorm:"foreignKey:CabinID"`
	Guest *GuestModel `gorm:"foreignKey:GuestID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of
// booking.Repository. The page size for list queries is threaded in at
// construction time rather than read from process-wide state.
type GormBookingRepository struct {
	db       *gorm.DB
	pageSize int
	log      *zap.Logger
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB, pageSize int, log *zap.Logger) *GormBookingRepository {
	return &GormBookingRepository{db: db, pageSize: pageSize, log: log}
}

// summaryRow is the scan target for list queries joining cabins and guests.
type summaryRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	StartDate     time.Time
	EndDate       time.Time
	NumNights     int
	NumGuests     int
	Status        string
	TotalPrice    float64
	CabinName     string
	GuestFullName string
	GuestEmail    string
}

// List retrieves booking summary rows matching the query and the total
// count unaffected by pagination.
func (r *GormBookingRepository) List(ctx context.Context, query bookingDomain.ListQuery) ([]bookingDomain.Summary, int64, error) {
	var total int64
	counted := applyFilter(r.db.WithContext(ctx).Model(&BookingModel{}), query.Filter)
	if err := counted.Count(&total).Error; err != nil {
		r.log.Error("failed to count bookings", zap.Error(err))
		return nil, 0, domain.NewStorageError("bookings could not be loaded", err)
	}

	rows := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("bookings.id, bookings.created_at, bookings.start_date, bookings.end_date, " +
			"bookings.num_nights, bookings.num_guests, bookings.status, bookings.total_price, " +
			"cabins.name AS cabin_name, guests.full_name AS guest_full_name, guests.email AS guest_email").
		Joins("JOIN cabins ON cabins.id = bookings.cabin_id").
		Joins("JOIN guests ON guests.id = bookings.guest_id")
	rows = applyFilter(rows, query.Filter)
	rows = applySort(rows, query.Sort)
	rows = applyPage(rows, query.Page, r.pageSize)

	var scanned []summaryRow
	if err := rows.Scan(&scanned).Error; err != nil {
		r.log.Error("failed to list bookings", zap.Error(err))
		return nil, 0, domain.NewStorageError("bookings could not be loaded", err)
	}

	summaries := make([]bookingDomain.Summary, len(scanned))
	for i, row := range scanned {
		summaries[i] = bookingDomain.Summary{
			ID:            row.ID,
			CreatedAt:     row.CreatedAt,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			NumNights:     row.NumNights,
			NumGuests:     row.NumGuests,
			Status:        bookingDomain.Status(row.Status),
			TotalPrice:    row.TotalPrice,
			CabinName:     row.CabinName,
			GuestFullName: row.GuestFullName,
			GuestEmail:    row.GuestEmail,
		}
	}
	return summaries, total, nil
}

// FindByID retrieves one booking fully expanded with its cabin and guest.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Cabin").
		Preload("Guest").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		r.log.Error("failed to find booking by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, domain.NewStorageError("booking could not be loaded", err)
	}
	return toDomainBooking(&model), nil
}

// Create persists a new booking.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.log.Error("failed to create booking", zap.Error(err))
		return domain.NewStorageError("booking could not be created", err)
	}
	return nil
}

// Update applies a partial field update to exactly one booking and
// returns the updated record. An extras-price change recomputes the
// total from the stored cabin price so the price-sum invariant holds.
func (r *GormBookingRepository) Update(ctx context.Context, id uuid.UUID, patch bookingDomain.Patch) (*bookingDomain.Booking, error) {
	var current BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		r.log.Error("failed to load booking for update", zap.String("id", id.String()), zap.Error(err))
		return nil, domain.NewStorageError("booking could not be updated", err)
	}

	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.ExtrasPrice != nil {
		updates["extras_price"] = *patch.ExtrasPrice
		updates["total_price"] = current.CabinPrice + *patch.ExtrasPrice
	}
	if patch.HasBreakfast != nil {
		updates["has_breakfast"] = *patch.HasBreakfast
	}
	if patch.IsPaid != nil {
		updates["is_paid"] = *patch.IsPaid
	}
	if patch.Observations != nil {
		updates["observations"] = *patch.Observations
	}
	if patch.NumGuests != nil {
		updates["num_guests"] = *patch.NumGuests
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&BookingModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			r.log.Error("failed to update booking", zap.String("id", id.String()), zap.Error(result.Error))
			return nil, domain.NewStorageError("booking could not be updated", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes exactly one booking by identity. Row-level access
// control is enforced by the storage service, not here.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		r.log.Error("failed to delete booking", zap.String("id", id.String()), zap.Error(result.Error))
		return domain.NewStorageError("booking could not be deleted", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// FindCreatedBetween returns the revenue projection of bookings created
// in [from, to].
func (r *GormBookingRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]bookingDomain.Revenue, error) {
	var rows []bookingDomain.Revenue
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("created_at, total_price, extras_price").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&rows).Error
	if err != nil {
		r.log.Error("failed to load bookings created after date", zap.Error(err))
		return nil, domain.NewStorageError("bookings could not be loaded", err)
	}
	return rows, nil
}

// FindStaysBetween returns full booking rows with the guest name for
// stays starting in [from, to].
func (r *GormBookingRepository) FindStaysBetween(ctx context.Context, from, to time.Time) ([]bookingDomain.Stay, error) {
	var models []BookingModel
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Where("start_date >= ? AND start_date <= ?", from, to).
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to load stays after date", zap.Error(err))
		return nil, domain.NewStorageError("bookings could not be loaded", err)
	}

	stays := make([]bookingDomain.Stay, len(models))
	for i, m := range models {
		stay := bookingDomain.Stay{Booking: *toDomainBooking(&m)}
		if m.Guest != nil {
			stay.GuestFullName = m.Guest.FullName
		}
		stays[i] = stay
	}
	return stays, nil
}

// activityRow is the scan target for the today-activity query.
type activityRow struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	StartDate        time.Time
	EndDate          time.Time
	NumNights        int
	NumGuests        int
	Status           string
	GuestFullName    string
	GuestNationality string
	GuestCountryFlag string
}

// FindTodayActivity returns bookings with a check-in or check-out event
// on the given date, ordered by creation time. The predicate runs in
// SQL so only the day's activity is retrieved, never the full history.
func (r *GormBookingRepository) FindTodayActivity(ctx context.Context, today time.Time) ([]bookingDomain.TodayActivity, error) {
	var scanned []activityRow
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Select("bookings.id, bookings.created_at, bookings.start_date, bookings.end_date, "+
			"bookings.num_nights, bookings.num_guests, bookings.status, "+
			"guests.full_name AS guest_full_name, guests.nationality AS guest_nationality, "+
			"guests.country_flag AS guest_country_flag").
		Joins("JOIN guests ON guests.id = bookings.guest_id").
		Where("(bookings.status = ? AND bookings.start_date = ?) OR (bookings.status = ? AND bookings.end_date = ?)",
			string(bookingDomain.StatusUnconfirmed), today,
			string(bookingDomain.StatusCheckedIn), today).
		Order("bookings.created_at").
		Scan(&scanned).Error
	if err != nil {
		r.log.Error("failed to load today's activity", zap.Error(err))
		return nil, domain.NewStorageError("bookings could not be loaded", err)
	}

	activity := make([]bookingDomain.TodayActivity, len(scanned))
	for i, row := range scanned {
		activity[i] = bookingDomain.TodayActivity{
			ID:               row.ID,
			CreatedAt:        row.CreatedAt,
			StartDate:        row.StartDate,
			EndDate:          row.EndDate,
			NumNights:        row.NumNights,
			NumGuests:        row.NumGuests,
			Status:           bookingDomain.Status(row.Status),
			GuestFullName:    row.GuestFullName,
			GuestNationality: row.GuestNationality,
			GuestCountryFlag: row.GuestCountryFlag,
		}
	}
	return activity, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:           bk.ID,
		CreatedAt:    bk.CreatedAt,
		StartDate:    bk.StartDate,
		EndDate:      bk.EndDate,
		NumNights:    bk.NumNights,
		NumGuests:    bk.NumGuests,
		Status:       string(bk.Status),
		CabinPrice:   bk.CabinPrice,
		ExtrasPrice:  bk.ExtrasPrice,
		TotalPrice:   bk.TotalPrice,
		HasBreakfast: bk.HasBreakfast,
		IsPaid:       bk.IsPaid,
		Observations: bk.Observations,
		CabinID:      bk.CabinID,
		GuestID:      bk.GuestID,
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	bk := &bookingDomain.Booking{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		NumNights:    m.NumNights,
		NumGuests:    m.NumGuests,
		Status:       bookingDomain.Status(m.Status),
		CabinPrice:   m.CabinPrice,
		ExtrasPrice:  m.ExtrasPrice,
		TotalPrice:   m.TotalPrice,
		HasBreakfast: m.HasBreakfast,
		IsPaid:       m.IsPaid,
		Observations: m.Observations,
		CabinID:      m.CabinID,
		GuestID:      m.GuestID,
	}
	if m.Cabin != nil {
		c := toDomainCabin(m.Cabin)
		bk.Cabin = &c
	}
	if m.Guest != nil {
		g := toDomainGuest(m.Guest)
		bk.Guest = &g
	}
	return bk
}
