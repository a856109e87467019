package postgres

import (
	"context"
	"errors"

	"merchex/listing"

	"gorm.io/gorm"
)

// ListingModel represents the database model for listings
type ListingModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Sold        bool   `gorm:"not null"`
	YearSold    *int
	Type        string `gorm:"not null"`
	BandID      *int64
}

// TableName specifies the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ListingRepository implements listing.Repository interface
type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) CreateListing(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	model := toListingModel(l)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return listing.Listing{}, listingError(err)
	}
	return toDomainListing(model), nil
}

func (r *ListingRepository) GetListing(ctx context.Context, id int64) (listing.Listing, error) {
	var model ListingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return listing.Listing{}, listing.ErrListingNotFound
	} else if err != nil {
		return listing.Listing{}, err
	}
	return toDomainListing(model), nil
}

func (r *ListingRepository) AllListings(ctx context.Context) ([]listing.Listing, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *ListingRepository) ListingsByBand(ctx context.Context, bandID int64) ([]listing.Listing, error) {
	return r.find(r.db.WithContext(ctx).Where("band_id = ?", bandID))
}

func (r *ListingRepository) UpdateListing(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	model := toListingModel(l)
	result := r.db.WithContext(ctx).
		Model(&ListingModel{ID: l.ID}).
		Select("*").Omit("id").
		Updates(model)
	if result.Error != nil {
		return listing.Listing{}, listingError(result.Error)
	}
	if result.RowsAffected == 0 {
		return listing.Listing{}, listing.ErrListingNotFound
	}
	return toDomainListing(model), nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ListingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) find(q *gorm.DB) ([]listing.Listing, error) {
	var models []ListingModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	listings := make([]listing.Listing, len(models))
	for i, model := range models {
		listings[i] = toDomainListing(model)
	}
	return listings, nil
}

func listingError(err error) error {
	if isIntegrityViolation(err) {
		return listing.ErrConstraintViolation
	}
	return err
}

func toDomainListing(model ListingModel) listing.Listing {
	return listing.Listing{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Sold:        model.Sold,
		YearSold:    model.YearSold,
		Type:        listing.Type(model.Type),
		BandID:      model.BandID,
	}
}

func toListingModel(l listing.Listing) ListingModel {
	return ListingModel{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Sold:        l.Sold,
		YearSold:    l.YearSold,
		Type:        string(l.Type),
		BandID:      l.BandID,
	}
}
