package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceComputeFinal(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"ten percent", 1000, 10, 900},
		{"no discount", 500, 0, 500},
		{"rounds discount amount", 999, 33, 999 - 330},
		{"full discount", 250, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Price{Price: tt.price, Discount: tt.discount}
			p.ComputeFinal()
			assert.Equal(t, tt.want, p.FinalPrice)
		})
	}
}

func TestPriceComputeFinalDefaultsCurrency(t *testing.T) {
	p := Price{Price: 100}
	p.ComputeFinal()
	assert.Equal(t, "INR", p.Currency)

	p = Price{Currency: "usd", Price: 100}
	p.ComputeFinal()
	assert.Equal(t, "USD", p.Currency)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPadding, StatusLive))
	assert.True(t, CanTransition(StatusPadding, StatusEnquiry))
	assert.True(t, CanTransition(StatusLive, StatusEnquiry))

	// demotions and transitions out of Enquiry are rejected
	assert.False(t, CanTransition(StatusLive, StatusPadding))
	assert.False(t, CanTransition(StatusEnquiry, StatusLive))
	assert.False(t, CanTransition(StatusEnquiry, StatusPadding))
	assert.False(t, CanTransition(StatusPadding, StatusPadding))
}

func TestSchemeFlagLookup(t *testing.T) {
	s := Scheme{SaleProduct: true, ValuableProduct: true}

	value, known := s.Flag(SchemeSaleProduct)
	assert.True(t, known)
	assert.True(t, value)

	value, known = s.Flag(SchemeTradingProduct)
	assert.True(t, known)
	assert.False(t, value)

	_, known = s.Flag("bestSeller")
	assert.False(t, known)
}

func TestSchemeKeysCoverAllFlags(t *testing.T) {
	for _, key := range SchemeKeys() {
		_, known := Scheme{}.Flag(key)
		assert.True(t, known, "key %q should be known", key)
	}
}

func TestNewModelDetails(t *testing.T) {
	d := NewModelDetails()

	assert.Empty(t, d.Colors)
	assert.NotNil(t, d.Colors)
	assert.Empty(t, d.Specifications)
	assert.Empty(t, d.Warranty)
	assert.Equal(t, Scheme{}, d.Scheme)
}

func TestHasModelNamedIsCaseInsensitive(t *testing.T) {
	p := Product{Models: []Model{{ModelID: "m1", ModelName: "VitalSign X1"}}}

	assert.True(t, p.HasModelNamed("vitalsign x1"))
	assert.True(t, p.HasModelNamed("VITALSIGN X1"))
	assert.False(t, p.HasModelNamed("VitalSign X2"))
}

func TestFindModel(t *testing.T) {
	p := Product{Models: []Model{{ModelID: "m1"}, {ModelID: "m2"}}}

	assert.Equal(t, "m2", p.FindModel("m2").ModelID)
	assert.Nil(t, p.FindModel("m3"))

	// returned pointer aliases the embedded model
	p.FindModel("m1").Status = StatusLive
	assert.Equal(t, StatusLive, p.Models[0].Status)
}
