package band

import (
	"context"
)

type Service interface {
	ListBands(ctx context.Context) ([]Band, error)
	GetBand(ctx context.Context, id int64) (Band, error)
	CreateBand(ctx context.Context, b Band) (Band, error)
	UpdateBand(ctx context.Context, id int64, p Patch) (Band, error)
	DeleteBand(ctx context.Context, id int64) error
}

// Repository persists bands. It does not validate: callers go through the
// Usecase. DeleteBand must also clear the band reference of every listing
// that pointed at the deleted band.
type Repository interface {
	CreateBand(ctx context.Context, b Band) (Band, error)
	GetBand(ctx context.Context, id int64) (Band, error)
	AllBands(ctx context.Context) ([]Band, error)
	UpdateBand(ctx context.Context, b Band) (Band, error)
	DeleteBand(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListBands(ctx context.Context) ([]Band, error) {
	return uc.r.AllBands(ctx)
}

func (uc *Usecase) GetBand(ctx context.Context, id int64) (Band, error) {
	if id <= 0 {
		return Band{}, ErrBandNotFound
	}
	return uc.r.GetBand(ctx, id)
}

func (uc *Usecase) CreateBand(ctx context.Context, b Band) (Band, error) {
	b = b.Normalize()
	b.ID = 0
	if err := b.Validate(); err != nil {
		return Band{}, err
	}
	return uc.r.CreateBand(ctx, b)
}

func (uc *Usecase) UpdateBand(ctx context.Context, id int64, p Patch) (Band, error) {
	existing, err := uc.GetBand(ctx, id)
	if err != nil {
		return Band{}, err
	}

	updated := p.Apply(existing).Normalize()
	updated.ID = existing.ID
	if err := updated.Validate(); err != nil {
		return Band{}, err
	}
	return uc.r.UpdateBand(ctx, updated)
}

// DeleteBand removes the band. Listings that referenced it report no band
// afterwards; they are never deleted. Deleting twice yields ErrBandNotFound.
func (uc *Usecase) DeleteBand(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBandNotFound
	}
	return uc.r.DeleteBand(ctx, id)
}
