package finance

import "time"

// exchangeLocation returns the exchange's location from the chart meta,
// falling back to a fixed zone built from the gmt offset if tzdata is missing.
func exchangeLocation(name, abbrev string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if abbrev == "" {
		abbrev = "EXCH"
	}
	return time.FixedZone(abbrev, gmtOffset)
}
