package pricing

import (
	"lumiere-booking-cli/config"
	"lumiere-booking-cli/model"
)

// Band maps an inclusive seat-number range to a rate.
type Band struct {
	From int
	To   int
	Rate float64
}

// Table is a seat pricing policy: the first band matching a seat's numeric
// suffix wins, anything else pays the standard rate. Kept table-driven so
// theatres can override the bands later.
type Table struct {
	Standard float64
	Bands    []Band
}

// FromConfig builds the table from the configured placeholder policy
// (default: seats 5-8 premium at 25, everything else 15).
func FromConfig(cfg config.PricingConfig) Table {
	return Table{
		Standard: cfg.StandardRate,
		Bands: []Band{
			{From: cfg.PremiumFrom, To: cfg.PremiumTo, Rate: cfg.PremiumRate},
		},
	}
}

// SeatPrice prices a single seat from its label.
func (t Table) SeatPrice(label string) float64 {
	number := model.SeatNumber(label)
	for _, band := range t.Bands {
		if number >= band.From && number <= band.To {
			return band.Rate
		}
	}
	return t.Standard
}

// Total sums the price over a selection's seat labels.
func (t Table) Total(labels []string) float64 {
	var total float64
	for _, label := range labels {
		total += t.SeatPrice(label)
	}
	return total
}
