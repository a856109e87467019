package listing

import (
	"context"
	"errors"

	"merchex/band"
	"merchex/errs"
)

type Service interface {
	ListListings(ctx context.Context) ([]Listing, error)
	ListListingsByBand(ctx context.Context, bandID int64) ([]Listing, error)
	GetListing(ctx context.Context, id int64) (Listing, error)
	CreateListing(ctx context.Context, l Listing) (Listing, error)
	UpdateListing(ctx context.Context, id int64, p Patch) (Listing, error)
	DeleteListing(ctx context.Context, id int64) error
}

// Repository persists listings without validating them.
type Repository interface {
	CreateListing(ctx context.Context, l Listing) (Listing, error)
	GetListing(ctx context.Context, id int64) (Listing, error)
	AllListings(ctx context.Context) ([]Listing, error)
	ListingsByBand(ctx context.Context, bandID int64) ([]Listing, error)
	UpdateListing(ctx context.Context, l Listing) (Listing, error)
	DeleteListing(ctx context.Context, id int64) error
}

// BandFinder resolves band references. band.Usecase satisfies it.
type BandFinder interface {
	GetBand(ctx context.Context, id int64) (band.Band, error)
}

type Usecase struct {
	r     Repository
	bands BandFinder
}

func NewUsecase(r Repository, bands BandFinder) *Usecase {
	return &Usecase{
		r:     r,
		bands: bands,
	}
}

func (uc *Usecase) ListListings(ctx context.Context) ([]Listing, error) {
	return uc.r.AllListings(ctx)
}

func (uc *Usecase) ListListingsByBand(ctx context.Context, bandID int64) ([]Listing, error) {
	if _, err := uc.bands.GetBand(ctx, bandID); err != nil {
		return nil, err
	}
	return uc.r.ListingsByBand(ctx, bandID)
}

func (uc *Usecase) GetListing(ctx context.Context, id int64) (Listing, error) {
	if id <= 0 {
		return Listing{}, ErrListingNotFound
	}
	return uc.r.GetListing(ctx, id)
}

func (uc *Usecase) CreateListing(ctx context.Context, l Listing) (Listing, error) {
	l = l.Normalize()
	l.ID = 0
	if err := uc.validate(ctx, l); err != nil {
		return Listing{}, err
	}
	return uc.r.CreateListing(ctx, l)
}

func (uc *Usecase) UpdateListing(ctx context.Context, id int64, p Patch) (Listing, error) {
	existing, err := uc.GetListing(ctx, id)
	if err != nil {
		return Listing{}, err
	}

	updated := p.Apply(existing).Normalize()
	updated.ID = existing.ID
	if err := uc.validate(ctx, updated); err != nil {
		return Listing{}, err
	}
	return uc.r.UpdateListing(ctx, updated)
}

func (uc *Usecase) DeleteListing(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrListingNotFound
	}
	return uc.r.DeleteListing(ctx, id)
}

// validate collects field violations and a dangling band reference into a
// single error.
func (uc *Usecase) validate(ctx context.Context, l Listing) error {
	fields := map[string]string{}
	if err := errs.Merge(fields, l.Validate()); err != nil {
		return err
	}

	if _, invalid := fields["band"]; l.HasBand() && !invalid {
		_, err := uc.bands.GetBand(ctx, *l.BandID)
		switch {
		case errors.Is(err, band.ErrBandNotFound):
			fields["band"] = "band does not exist"
		case err != nil:
			return err
		}
	}

	if len(fields) > 0 {
		return errs.Invalid(fields)
	}
	return nil
}
