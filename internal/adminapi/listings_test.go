package adminapi

import (
	"testing"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validPayload() listingPayload {
	return listingPayload{
		Title:    "Lake View Villa",
		Kind:     domain.KindForSale,
		Category: domain.CategoryHouse,
		Price:    50000,
		AreaSqm:  320,
		City:     " Mzuzu ",
	}
}

func TestListingPayloadValidate(t *testing.T) {
	p := validPayload()
	msg, valid := p.validate()
	assert.True(t, valid)
	assert.Empty(t, msg)
	assert.Equal(t, domain.StatusAvailable, p.Status)
}

func TestListingPayloadValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*listingPayload)
	}{
		{"blank title", func(p *listingPayload) { p.Title = "   " }},
		{"bad kind", func(p *listingPayload) { p.Kind = "lease" }},
		{"bad category", func(p *listingPayload) { p.Category = "castle" }},
		{"bad status", func(p *listingPayload) { p.Status = "pending" }},
		{"negative price", func(p *listingPayload) { p.Price = -1 }},
		{"zero area", func(p *listingPayload) { p.AreaSqm = 0 }},
		{"negative bedrooms", func(p *listingPayload) { p.Bedrooms = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(&p)
			msg, valid := p.validate()
			assert.False(t, valid)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestListingPayloadApplyTrimsLocation(t *testing.T) {
	p := validPayload()
	_, valid := p.validate()
	assert.True(t, valid)

	var l domain.Listing
	p.apply(&l)
	assert.Equal(t, "Mzuzu", l.City)
	assert.Equal(t, "Lake View Villa", l.Title)
	assert.Equal(t, domain.StatusAvailable, l.Status)
}
