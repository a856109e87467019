// nolint: funlen
package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchex/errs"
	"merchex/httpserver"
	"merchex/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) ListListings(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingService) ListListingsByBand(ctx context.Context, bandID int64) ([]listing.Listing, error) {
	args := m.Called(ctx, bandID)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingService) GetListing(ctx context.Context, id int64) (listing.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingService) CreateListing(ctx context.Context, l listing.Listing) (listing.Listing, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingService) UpdateListing(ctx context.Context, id int64, p listing.Patch) (listing.Listing, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingService) DeleteListing(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newListingServer() (*httpserver.Server, *MockListingService) {
	svc := new(MockListingService)
	server := httpserver.Default(testConfig())
	server.ListingService = svc
	return server, svc
}

func TestCreateListing(t *testing.T) {
	t.Run("should return 201 with the stored listing", func(t *testing.T) {
		server, svc := newListingServer()
		bandID := int64(1)
		stored := listing.Listing{ID: 5, Title: "Remain in Light LP", Description: "Original pressing", Type: listing.TypeRecord, BandID: &bandID}
		svc.On("CreateListing", mock.Anything, listing.Listing{
			Title:       "Remain in Light LP",
			Description: "Original pressing",
			Type:        "REC",
			BandID:      &bandID,
		}).Return(stored, nil).Once()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, newJSONRequest(t, http.MethodPost, "/api/listings", map[string]interface{}{
			"title":       "Remain in Light LP",
			"description": "Original pressing",
			"type":        "REC",
			"band":        1,
		}, ""))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"band":1`)
		assert.Contains(t, rec.Body.String(), `"year_sold":null`)
		svc.AssertExpectations(t)
	})

	t.Run("should report a dangling band reference", func(t *testing.T) {
		server, svc := newListingServer()
		svc.On("CreateListing", mock.Anything, mock.Anything).
			Return(listing.Listing{}, errs.Invalid(map[string]string{"band": "band does not exist"})).Once()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, newJSONRequest(t, http.MethodPost, "/api/listings", map[string]interface{}{
			"title":       "Bootleg tee",
			"description": "XL",
			"type":        "CLO",
			"band":        99,
		}, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "band does not exist", decodeAPIResponse(t, rec).Fields["band"])
	})
}

func TestUpdateListing(t *testing.T) {
	t.Run("PUT should clear absent nullable fields", func(t *testing.T) {
		server, svc := newListingServer()
		svc.On("UpdateListing", mock.Anything, int64(5), mock.MatchedBy(func(p listing.Patch) bool {
			return p.ClearYearSold && p.BandID != nil && *p.BandID == 0 &&
				*p.Title == "Remain in Light LP" && *p.Type == listing.Type("RECORD")
		})).Return(listing.Listing{ID: 5}, nil).Once()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, newJSONRequest(t, http.MethodPut, "/api/listings/5", map[string]interface{}{
			"title":       "Remain in Light LP",
			"description": "Original pressing",
			"type":        "RECORD",
			"sold":        true,
		}, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("PATCH should keep absent fields", func(t *testing.T) {
		server, svc := newListingServer()
		year := 2020
		svc.On("UpdateListing", mock.Anything, int64(5), listing.Patch{YearSold: &year}).
			Return(listing.Listing{ID: 5, YearSold: &year}, nil).Once()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, newJSONRequest(t, http.MethodPatch, "/api/listings/5", map[string]interface{}{
			"year_sold": 2020,
		}, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"year_sold":2020`)
		svc.AssertExpectations(t)
	})

	t.Run("should return 404 for an unknown listing", func(t *testing.T) {
		server, svc := newListingServer()
		svc.On("UpdateListing", mock.Anything, int64(8), mock.Anything).
			Return(listing.Listing{}, listing.ErrListingNotFound).Once()

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, newJSONRequest(t, http.MethodPatch, "/api/listings/8", map[string]interface{}{}, ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListAndDeleteListings(t *testing.T) {
	server, svc := newListingServer()
	svc.On("ListListings", mock.Anything).Return([]listing.Listing{{ID: 1, Title: "Poster"}}, nil).Once()
	svc.On("GetListing", mock.Anything, int64(1)).Return(listing.Listing{ID: 1, Title: "Poster"}, nil).Once()
	svc.On("DeleteListing", mock.Anything, int64(1)).Return(nil).Once()

	list := httptest.NewRecorder()
	server.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/listings", nil))
	get := httptest.NewRecorder()
	server.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/listings/1", nil))
	del := httptest.NewRecorder()
	server.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/api/listings/1", nil))

	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"data":[`)
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, http.StatusNoContent, del.Code)
	svc.AssertExpectations(t)
}

func TestCatalogChoices(t *testing.T) {
	server := httpserver.Default(testConfig())

	genres := httptest.NewRecorder()
	server.ServeHTTP(genres, httptest.NewRequest(http.MethodGet, "/api/genres", nil))
	types := httptest.NewRecorder()
	server.ServeHTTP(types, httptest.NewRequest(http.MethodGet, "/api/listing-types", nil))

	var genreResult, typeResult struct {
		Data []httpserver.Choice `json:"data"`
	}
	decodeResult(t, genres, &genreResult)
	decodeResult(t, types, &typeResult)
	assert.Equal(t, []httpserver.Choice{
		{Code: "HH", Name: "HIP_HOP", Label: "Hip Hop"},
		{Code: "SP", Name: "SYNTH_POP", Label: "Synth Pop"},
		{Code: "AR", Name: "ALTERNATIVE_ROCK", Label: "Alternative Rock"},
	}, genreResult.Data)
	assert.Len(t, typeResult.Data, 4)
	assert.Equal(t, httpserver.Choice{Code: "REC", Name: "RECORD", Label: "Record"}, typeResult.Data[0])
}
