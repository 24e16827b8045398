package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceList holds the rates and surcharges the Pricing Engine applies.
// Rates are decimal; surcharges are whole currency units.
type PriceList struct {
	Currency           string           `json:"currency" yaml:"currency"`
	SteelPerMeter      decimal.Decimal  `json:"steel_per_meter" yaml:"steel_per_meter"`
	GlassPerSqMeter    decimal.Decimal  `json:"glass_per_sqm" yaml:"glass_per_sqm"`
	BaseFee            int64            `json:"base_fee" yaml:"base_fee"`
	PivotSurcharge     int64            `json:"pivot_surcharge" yaml:"pivot_surcharge"`
	DoubleSurcharge    int64            `json:"double_surcharge" yaml:"double_surcharge"`
	SidePanelSurcharge int64            `json:"side_panel_surcharge" yaml:"side_panel_surcharge"`
	Handles            map[Handle]int64 `json:"handles" yaml:"handles"`
}

// DefaultPriceList returns the shop's current EUR price list.
func DefaultPriceList() PriceList {
	return PriceList{
		Currency:           "EUR",
		SteelPerMeter:      decimal.NewFromInt(45),
		GlassPerSqMeter:    decimal.NewFromInt(140),
		BaseFee:            650,
		PivotSurcharge:     450,
		DoubleSurcharge:    350,
		SidePanelSurcharge: 250,
		Handles: map[Handle]int64{
			HandleU:        55,
			HandleLever:    65,
			HandleBracket:  85,
			HandleCorner:   75,
			HandleCrescent: 95,
			HandleOval:     90,
			HandleNone:     0,
		},
	}
}

// HandlePrice returns the price of a handle; unknown handles cost nothing.
func (p PriceList) HandlePrice(h Handle) int64 {
	return p.Handles[h]
}

// Clone returns a copy with its own handle table.
func (p PriceList) Clone() PriceList {
	cp := p
	cp.Handles = make(map[Handle]int64, len(p.Handles))
	for h, v := range p.Handles {
		cp.Handles[h] = v
	}
	return cp
}

// Validate rejects negative rates and surcharges.
func (p PriceList) Validate() error {
	if p.Currency == "" {
		return fmt.Errorf("price list: currency is empty")
	}
	if p.SteelPerMeter.IsNegative() {
		return fmt.Errorf("price list: steel rate %s is negative", p.SteelPerMeter)
	}
	if p.GlassPerSqMeter.IsNegative() {
		return fmt.Errorf("price list: glass rate %s is negative", p.GlassPerSqMeter)
	}
	for name, v := range map[string]int64{
		"base fee":             p.BaseFee,
		"pivot surcharge":      p.PivotSurcharge,
		"double surcharge":     p.DoubleSurcharge,
		"side panel surcharge": p.SidePanelSurcharge,
	} {
		if v < 0 {
			return fmt.Errorf("price list: %s %d is negative", name, v)
		}
	}
	for h, v := range p.Handles {
		if v < 0 {
			return fmt.Errorf("price list: handle %s price %d is negative", h, v)
		}
	}
	return nil
}
