// nolint: funlen
package listing_test

import (
	"context"
	"errors"
	"testing"

	"merchex/band"
	"merchex/errs"
	"merchex/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) CreateListing(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingRepository) GetListing(ctx context.Context, id int64) (listing.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingRepository) AllListings(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) ListingsByBand(ctx context.Context, bandID int64) ([]listing.Listing, error) {
	args := m.Called(ctx, bandID)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) UpdateListing(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingRepository) DeleteListing(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBandFinder struct {
	mock.Mock
}

func (m *MockBandFinder) GetBand(ctx context.Context, id int64) (band.Band, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(band.Band), args.Error(1)
}

func TestCreateListing(t *testing.T) {
	t.Run("should store a listing without band", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		stored := l
		stored.ID = 1
		r.On("CreateListing", mock.Anything, l).Return(stored, nil).Once()

		created, err := uc.CreateListing(context.Background(), l)

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		bands.AssertNotCalled(t, "GetBand", mock.Anything, mock.Anything)
		r.AssertExpectations(t)
	})

	t.Run("should resolve the band reference", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		l.BandID = int64Ptr(1)
		bands.On("GetBand", mock.Anything, int64(1)).Return(band.Band{ID: 1}, nil).Once()
		r.On("CreateListing", mock.Anything, l).Return(l, nil).Once()

		_, err := uc.CreateListing(context.Background(), l)

		require.NoError(t, err)
		bands.AssertExpectations(t)
		r.AssertExpectations(t)
	})

	t.Run("should reject a dangling band reference", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		l.BandID = int64Ptr(404)
		bands.On("GetBand", mock.Anything, int64(404)).Return(band.Band{}, band.ErrBandNotFound).Once()

		_, err := uc.CreateListing(context.Background(), l)

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "band does not exist", errs.ErrorFields(err)["band"])
		r.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
	})

	t.Run("should report field errors together with the dangling reference", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		l.Type = "VINYL"
		l.BandID = int64Ptr(404)
		bands.On("GetBand", mock.Anything, int64(404)).Return(band.Band{}, band.ErrBandNotFound).Once()

		_, err := uc.CreateListing(context.Background(), l)

		fields := errs.ErrorFields(err)
		assert.Contains(t, fields, "type")
		assert.Contains(t, fields, "band")
		r.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
	})

	t.Run("should surface band lookup failures", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		l.BandID = int64Ptr(1)
		lookupErr := errors.New("db down")
		bands.On("GetBand", mock.Anything, int64(1)).Return(band.Band{}, lookupErr).Once()

		_, err := uc.CreateListing(context.Background(), l)

		assert.ErrorIs(t, err, lookupErr)
		r.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
	})

	t.Run("should reject unknown type without touching the store", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		l := validListing()
		l.Type = "BOOK"

		_, err := uc.CreateListing(context.Background(), l)

		assert.Contains(t, errs.ErrorFields(err), "type")
		r.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
	})
}

func TestUpdateListing(t *testing.T) {
	existing := validListing()
	existing.ID = 5

	t.Run("should apply the patch and resolve a new band", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		expected := existing
		expected.BandID = int64Ptr(2)
		r.On("GetListing", mock.Anything, int64(5)).Return(existing, nil).Once()
		bands.On("GetBand", mock.Anything, int64(2)).Return(band.Band{ID: 2}, nil).Once()
		r.On("UpdateListing", mock.Anything, expected).Return(expected, nil).Once()

		updated, err := uc.UpdateListing(context.Background(), 5, listing.Patch{BandID: int64Ptr(2)})

		require.NoError(t, err)
		assert.Equal(t, expected, updated)
		r.AssertExpectations(t)
	})

	t.Run("should reject a dangling band without writing", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		r.On("GetListing", mock.Anything, int64(5)).Return(existing, nil).Once()
		bands.On("GetBand", mock.Anything, int64(9)).Return(band.Band{}, band.ErrBandNotFound).Once()

		_, err := uc.UpdateListing(context.Background(), 5, listing.Patch{BandID: int64Ptr(9)})

		assert.Contains(t, errs.ErrorFields(err), "band")
		r.AssertNotCalled(t, "UpdateListing", mock.Anything, mock.Anything)
	})

	t.Run("should report not found", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		r.On("GetListing", mock.Anything, int64(8)).Return(listing.Listing{}, listing.ErrListingNotFound).Once()

		_, err := uc.UpdateListing(context.Background(), 8, listing.Patch{})

		assert.ErrorIs(t, err, listing.ErrListingNotFound)
	})
}

func TestListListingsByBand(t *testing.T) {
	t.Run("should list listings of an existing band", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		listings := []listing.Listing{{ID: 1, Title: "Tee", BandID: int64Ptr(3)}}
		bands.On("GetBand", mock.Anything, int64(3)).Return(band.Band{ID: 3}, nil).Once()
		r.On("ListingsByBand", mock.Anything, int64(3)).Return(listings, nil).Once()

		result, err := uc.ListListingsByBand(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, listings, result)
	})

	t.Run("should report a missing band", func(t *testing.T) {
		r, bands := new(MockListingRepository), new(MockBandFinder)
		uc := listing.NewUsecase(r, bands)
		bands.On("GetBand", mock.Anything, int64(3)).Return(band.Band{}, band.ErrBandNotFound).Once()

		_, err := uc.ListListingsByBand(context.Background(), 3)

		assert.ErrorIs(t, err, band.ErrBandNotFound)
		r.AssertNotCalled(t, "ListingsByBand", mock.Anything, mock.Anything)
	})
}

func TestDeleteListing(t *testing.T) {
	r, bands := new(MockListingRepository), new(MockBandFinder)
	uc := listing.NewUsecase(r, bands)
	r.On("DeleteListing", mock.Anything, int64(2)).Return(nil).Once()
	r.On("DeleteListing", mock.Anything, int64(2)).Return(listing.ErrListingNotFound).Once()

	assert.NoError(t, uc.DeleteListing(context.Background(), 2))
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(uc.DeleteListing(context.Background(), 2)))
	assert.Equal(t, listing.ErrListingNotFound, uc.DeleteListing(context.Background(), -1))
	r.AssertExpectations(t)
}
