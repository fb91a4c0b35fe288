package document

import (
	"math"

	"region-tracer/internal/calibration"
	"region-tracer/pkg/colorutil"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AreaTotal aggregates the regions of one colour.
type AreaTotal struct {
	Color        string // colour value of the first region seen
	Name         string // name of the first region seen
	Count        int
	PixelArea    float64
	SquareMeters float64
	Calibrated   bool
}

// AreaSummary groups regions by colour key in first-seen order.
func (d *Document) AreaSummary() []AreaTotal {
	mpp, calibrated := d.MetersPerPixel()
	var totals []AreaTotal
	index := make(map[string]int)

	for _, r := range d.regions {
		key := colorutil.NormalizeKey(r.Color)
		i, ok := index[key]
		if !ok {
			name := r.Name
			if name == "" {
				name = r.Color
			}
			i = len(totals)
			index[key] = i
			totals = append(totals, AreaTotal{Color: r.Color, Name: name, Calibrated: calibrated})
		}
		totals[i].Count++
		totals[i].PixelArea += r.Area()
	}
	if calibrated {
		for i := range totals {
			totals[i].SquareMeters = calibration.SquareMeters(totals[i].PixelArea, mpp)
		}
	}
	return totals
}

// Format renders the area with grouping: m² to two decimals when calibrated,
// whole px² otherwise. A nil printer uses English.
func (t AreaTotal) Format(p *message.Printer) string {
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	if t.Calibrated {
		return p.Sprintf("%v m2", number.Decimal(t.SquareMeters, number.MaxFractionDigits(2)))
	}
	return p.Sprintf("%v px2", number.Decimal(math.Round(t.PixelArea)))
}
