// nolint: funlen
package band_test

import (
	"context"
	"errors"
	"testing"

	"merchex/band"
	"merchex/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBandRepository struct {
	mock.Mock
}

func (m *MockBandRepository) CreateBand(ctx context.Context, b band.Band) (band.Band, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(band.Band), args.Error(1)
}

func (m *MockBandRepository) GetBand(ctx context.Context, id int64) (band.Band, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(band.Band), args.Error(1)
}

func (m *MockBandRepository) AllBands(ctx context.Context) ([]band.Band, error) {
	args := m.Called(ctx)
	return args.Get(0).([]band.Band), args.Error(1)
}

func (m *MockBandRepository) UpdateBand(ctx context.Context, b band.Band) (band.Band, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(band.Band), args.Error(1)
}

func (m *MockBandRepository) DeleteBand(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateBand(t *testing.T) {
	t.Run("should store a valid band and return it with its id", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		b := validBand()
		stored := b
		stored.ID = 1
		r.On("CreateBand", mock.Anything, b).Return(stored, nil).Once()

		created, err := uc.CreateBand(context.Background(), b)

		require.NoError(t, err)
		assert.Equal(t, stored, created)
		r.AssertExpectations(t)
	})

	t.Run("should normalize a symbolic genre before storing", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		b := validBand()
		b.Genre = "ALTERNATIVE_ROCK"
		expected := validBand()
		r.On("CreateBand", mock.Anything, expected).Return(expected, nil).Once()

		_, err := uc.CreateBand(context.Background(), b)

		require.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should ignore a caller supplied id", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		b := validBand()
		b.ID = 99
		r.On("CreateBand", mock.Anything, validBand()).Return(validBand(), nil).Once()

		_, err := uc.CreateBand(context.Background(), b)

		require.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should reject year_formed out of range without touching the store", func(t *testing.T) {
		for _, year := range []int{1850, 1899, 2022, 0} {
			r := new(MockBandRepository)
			uc := band.NewUsecase(r)
			b := validBand()
			b.YearFormed = year

			_, err := uc.CreateBand(context.Background(), b)

			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
			assert.Contains(t, errs.ErrorFields(err), "year_formed")
			r.AssertNotCalled(t, "CreateBand", mock.Anything, mock.Anything)
		}
	})

	t.Run("should reject unknown genre without touching the store", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		b := validBand()
		b.Genre = "POLKA"

		_, err := uc.CreateBand(context.Background(), b)

		assert.Contains(t, errs.ErrorFields(err), "genre")
		r.AssertNotCalled(t, "CreateBand", mock.Anything, mock.Anything)
	})
}

func TestGetBand(t *testing.T) {
	t.Run("should return the stored band", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		b := validBand()
		b.ID = 1
		r.On("GetBand", mock.Anything, int64(1)).Return(b, nil).Once()

		got, err := uc.GetBand(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, b, got)
		r.AssertExpectations(t)
	})

	t.Run("should report not found for non positive ids", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)

		_, err := uc.GetBand(context.Background(), 0)

		assert.Equal(t, band.ErrBandNotFound, err)
		r.AssertNotCalled(t, "GetBand", mock.Anything, mock.Anything)
	})
}

func TestListBands(t *testing.T) {
	r := new(MockBandRepository)
	uc := band.NewUsecase(r)
	bands := []band.Band{
		{ID: 1, Name: "Talking Heads", Genre: band.GenreAlternativeRock, YearFormed: 1975},
		{ID: 2, Name: "Depeche Mode", Genre: band.GenreSynthPop, YearFormed: 1980},
	}
	r.On("AllBands", mock.Anything).Return(bands, nil).Once()

	result, err := uc.ListBands(context.Background())

	require.NoError(t, err)
	assert.Equal(t, bands, result)
	r.AssertExpectations(t)
}

func TestUpdateBand(t *testing.T) {
	existing := validBand()
	existing.ID = 1

	t.Run("should keep unspecified fields", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		year := 1974
		expected := existing
		expected.YearFormed = year
		r.On("GetBand", mock.Anything, int64(1)).Return(existing, nil).Once()
		r.On("UpdateBand", mock.Anything, expected).Return(expected, nil).Once()

		updated, err := uc.UpdateBand(context.Background(), 1, band.Patch{YearFormed: &year})

		require.NoError(t, err)
		assert.Equal(t, expected, updated)
		r.AssertExpectations(t)
	})

	t.Run("should reject invalid patch without writing", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		year := 2030
		r.On("GetBand", mock.Anything, int64(1)).Return(existing, nil).Once()

		_, err := uc.UpdateBand(context.Background(), 1, band.Patch{YearFormed: &year})

		assert.Contains(t, errs.ErrorFields(err), "year_formed")
		r.AssertNotCalled(t, "UpdateBand", mock.Anything, mock.Anything)
	})

	t.Run("should report not found for a missing band", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		name := "Anyone"
		r.On("GetBand", mock.Anything, int64(42)).Return(band.Band{}, band.ErrBandNotFound).Once()

		_, err := uc.UpdateBand(context.Background(), 42, band.Patch{Name: &name})

		assert.ErrorIs(t, err, band.ErrBandNotFound)
		r.AssertNotCalled(t, "UpdateBand", mock.Anything, mock.Anything)
	})
}

func TestDeleteBand(t *testing.T) {
	t.Run("should delete once and report not found afterwards", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		r.On("DeleteBand", mock.Anything, int64(1)).Return(nil).Once()
		r.On("DeleteBand", mock.Anything, int64(1)).Return(band.ErrBandNotFound).Once()

		first := uc.DeleteBand(context.Background(), 1)
		second := uc.DeleteBand(context.Background(), 1)

		assert.NoError(t, first)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(second))
		r.AssertExpectations(t)
	})

	t.Run("should pass through store failures", func(t *testing.T) {
		r := new(MockBandRepository)
		uc := band.NewUsecase(r)
		storeErr := errors.New("connection reset")
		r.On("DeleteBand", mock.Anything, int64(3)).Return(storeErr).Once()

		err := uc.DeleteBand(context.Background(), 3)

		assert.ErrorIs(t, err, storeErr)
	})
}
