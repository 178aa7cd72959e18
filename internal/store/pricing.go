package store

import (
	"math"
	"time"
)

var unitLength = map[Model]time.Duration{
	Hourly: time.Hour,
	Daily:  24 * time.Hour,
	Weekly: 7 * 24 * time.Hour,
}

// Price per billable unit, in currency units.
var unitPrice = map[Model]float64{
	Hourly: 5,
	Daily:  25,
	Weekly: 100,
}

// Family rentals get a flat 30% discount on their subtotal, applied once
// after summing, not per rental.
const familyDiscount = 0.7

const (
	minFamilySize = 3
	maxFamilySize = 5
)

func parseModel(s string) (Model, error) {
	m := Model(s)
	if _, ok := unitLength[m]; !ok {
		return "", NewError(InvalidModel, "unknown rental model %q, want hourly, daily or weekly", s)
	}
	return m, nil
}

// elapsedUnits converts a rental interval into billable units for the
// given model. Partial units count as full ones and every rental is
// billed at least one unit.
func elapsedUnits(m Model, start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, NewError(InvalidInterval, "rental end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	units := int(math.Ceil(end.Sub(start).Seconds() / unitLength[m].Seconds()))
	if units < 1 {
		units = 1
	}
	return units, nil
}
