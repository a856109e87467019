package postgres

import (
	"context"
	"errors"

	"merchex/band"

	"gorm.io/gorm"
)

// BandModel represents the database model for bands
type BandModel struct {
	ID               int64  `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Genre            string `gorm:"not null"`
	Biography        string `gorm:"not null"`
	YearFormed       int    `gorm:"not null"`
	Active           bool   `gorm:"not null"`
	OfficialHomepage *string
}

// TableName specifies the table name for GORM
func (BandModel) TableName() string {
	return "bands"
}

// BandRepository implements band.Repository interface
type BandRepository struct {
	db *gorm.DB
}

func NewBandRepository(db *gorm.DB) *BandRepository {
	return &BandRepository{db: db}
}

func (r *BandRepository) CreateBand(ctx context.Context, b band.Band) (band.Band, error) {
	model := toBandModel(b)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return band.Band{}, bandError(err)
	}
	return toDomainBand(model), nil
}

func (r *BandRepository) GetBand(ctx context.Context, id int64) (band.Band, error) {
	var model BandModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return band.Band{}, band.ErrBandNotFound
	} else if err != nil {
		return band.Band{}, err
	}
	return toDomainBand(model), nil
}

// AllBands returns every band in insertion order.
func (r *BandRepository) AllBands(ctx context.Context) ([]band.Band, error) {
	var models []BandModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	bands := make([]band.Band, len(models))
	for i, model := range models {
		bands[i] = toDomainBand(model)
	}
	return bands, nil
}

// UpdateBand overwrites every column of the band with the given id.
func (r *BandRepository) UpdateBand(ctx context.Context, b band.Band) (band.Band, error) {
	model := toBandModel(b)
	result := r.db.WithContext(ctx).
		Model(&BandModel{ID: b.ID}).
		Select("*").Omit("id").
		Updates(model)
	if result.Error != nil {
		return band.Band{}, bandError(result.Error)
	}
	if result.RowsAffected == 0 {
		return band.Band{}, band.ErrBandNotFound
	}
	return toDomainBand(model), nil
}

// DeleteBand clears the band reference of every listing pointing at the band
// and deletes the band, in one transaction.
func (r *BandRepository) DeleteBand(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&ListingModel{}).
			Where("band_id = ?", id).
			Update("band_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&BandModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return band.ErrBandNotFound
		}
		return nil
	})
}

func bandError(err error) error {
	if isIntegrityViolation(err) {
		return band.ErrConstraintViolation
	}
	return err
}

func toDomainBand(model BandModel) band.Band {
	b := band.Band{
		ID:         model.ID,
		Name:       model.Name,
		Genre:      band.Genre(model.Genre),
		Biography:  model.Biography,
		YearFormed: model.YearFormed,
		Active:     model.Active,
	}
	if model.OfficialHomepage != nil {
		b.OfficialHomepage = *model.OfficialHomepage
	}
	return b
}

func toBandModel(b band.Band) BandModel {
	model := BandModel{
		ID:         b.ID,
		Name:       b.Name,
		Genre:      string(b.Genre),
		Biography:  b.Biography,
		YearFormed: b.YearFormed,
		Active:     b.Active,
	}
	if b.OfficialHomepage != "" {
		homepage := b.OfficialHomepage
		model.OfficialHomepage = &homepage
	}
	return model
}
