package main

import (
	"context"
	"fmt"
	"io"

	"merchex/band"
	"merchex/listing"

	"gopkg.in/yaml.v3"
)

type fixture struct {
	Bands    []bandFixture    `yaml:"bands"`
	Listings []listingFixture `yaml:"listings"`
}

type bandFixture struct {
	Name             string           `yaml:"name"`
	Genre            string           `yaml:"genre"`
	Biography        string           `yaml:"biography"`
	YearFormed       int              `yaml:"year_formed"`
	Active           *bool            `yaml:"active"`
	OfficialHomepage string           `yaml:"official_homepage"`
	Listings         []listingFixture `yaml:"listings"`
}

type listingFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Sold        bool   `yaml:"sold"`
	YearSold    *int   `yaml:"year_sold"`
}

func (f bandFixture) toBand() band.Band {
	b := band.Band{
		Name:             f.Name,
		Genre:            band.Genre(f.Genre),
		Biography:        f.Biography,
		YearFormed:       f.YearFormed,
		Active:           true,
		OfficialHomepage: f.OfficialHomepage,
	}
	if f.Active != nil {
		b.Active = *f.Active
	}
	return b
}

func (f listingFixture) toListing(bandID *int64) listing.Listing {
	return listing.Listing{
		Title:       f.Title,
		Description: f.Description,
		Type:        listing.Type(f.Type),
		Sold:        f.Sold,
		YearSold:    f.YearSold,
		BandID:      bandID,
	}
}

func parseFixture(r io.Reader) (fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return fixture{}, fmt.Errorf("catalogseed: parse fixture: %w", err)
	}
	return f, nil
}

type seedResult struct {
	Bands    int
	Listings int
}

// seed creates every band of f followed by its listings, then the listings
// that belong to no band. Records go through the services so they are
// validated like any API write. It stops at the first failure.
func seed(ctx context.Context, bands band.Service, listings listing.Service, f fixture) (seedResult, error) {
	var res seedResult
	for _, bf := range f.Bands {
		created, err := bands.CreateBand(ctx, bf.toBand())
		if err != nil {
			return res, fmt.Errorf("band %q: %w", bf.Name, err)
		}
		res.Bands++

		bandID := created.ID
		for _, lf := range bf.Listings {
			if _, err := listings.CreateListing(ctx, lf.toListing(&bandID)); err != nil {
				return res, fmt.Errorf("listing %q: %w", lf.Title, err)
			}
			res.Listings++
		}
	}

	for _, lf := range f.Listings {
		if _, err := listings.CreateListing(ctx, lf.toListing(nil)); err != nil {
			return res, fmt.Errorf("listing %q: %w", lf.Title, err)
		}
		res.Listings++
	}
	return res, nil
}
