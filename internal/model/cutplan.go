package model

// Cut is one steel part to be sawn from a stock bar.
type Cut struct {
	Label   string         `json:"label"`
	Profile ProfileSection `json:"profile"`
	Length  float64        `json:"length"` // mm
	Leaf    int            `json:"leaf"`   // 1-based leaf the part belongs to
}

// BarResult is one stock bar with the cuts assigned to it, in saw order.
type BarResult struct {
	Stock StockBar `json:"stock"`
	Cuts  []Cut    `json:"cuts"`
	Kerf  float64  `json:"kerf"` // mm lost per cut
}

// UsedLength returns the length consumed by cuts and saw kerf.
func (b BarResult) UsedLength() float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c.Length + b.Kerf
	}
	return total
}

// Remaining returns the length left on the bar after all cuts.
func (b BarResult) Remaining() float64 {
	r := b.Stock.Length - b.UsedLength()
	if r < 0 {
		return 0
	}
	return r
}

// Efficiency returns the share of the bar that ends up in parts, in percent.
func (b BarResult) Efficiency() float64 {
	if b.Stock.Length == 0 {
		return 0
	}
	var parts float64
	for _, c := range b.Cuts {
		parts += c.Length
	}
	return parts / b.Stock.Length * 100.0
}

// CutPlan holds the full bar assignment for a door order.
type CutPlan struct {
	Bars     []BarResult `json:"bars"`
	Unplaced []Cut       `json:"unplaced"` // Cuts longer than any stock bar
}

// BarCount returns the number of bars per profile section.
func (p CutPlan) BarCount() map[ProfileSection]int {
	counts := make(map[ProfileSection]int)
	for _, b := range p.Bars {
		counts[b.Stock.Profile]++
	}
	return counts
}

// TotalEfficiency returns overall bar usage in percent.
func (p CutPlan) TotalEfficiency() float64 {
	var used, total float64
	for _, b := range p.Bars {
		for _, c := range b.Cuts {
			used += c.Length
		}
		total += b.Stock.Length
	}
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}
