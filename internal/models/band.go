package models

import "fmt"

// Band is the radio band a link operates on.
type Band int

const (
	BandUnknown Band = iota
	Band2_4GHz
	Band5GHz
	Band6GHz
)

var bandNames = [...]string{
	BandUnknown: "Unknown",
	Band2_4GHz:  "2.4GHz",
	Band5GHz:    "5GHz",
	Band6GHz:    "6GHz",
}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return bandNames[BandUnknown]
	}
	return bandNames[b]
}

// BandFromFrequency classifies a center frequency in MHz.
func BandFromFrequency(mhz int) Band {
	switch {
	case mhz >= 2400 && mhz <= 2500:
		return Band2_4GHz
	case mhz >= 5150 && mhz <= 5900:
		return Band5GHz
	case mhz >= 5925 && mhz <= 7125:
		return Band6GHz
	default:
		return BandUnknown
	}
}

// ParseBand is the inverse of Band.String.
func ParseBand(s string) (Band, error) {
	for i, name := range bandNames {
		if name == s {
			return Band(i), nil
		}
	}
	return BandUnknown, fmt.Errorf("unknown band %q", s)
}

func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Band) UnmarshalText(text []byte) error {
	parsed, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
