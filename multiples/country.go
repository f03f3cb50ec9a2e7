package multiples

import "fmt"

// Country selects the per-jurisdiction behaviour. It is resolved once at the
// edge of each request and passed through explicitly rather than re-branched
// at every call site.
type Country string

// The two supported jurisdictions.
const (
	CountryEnglandWales Country = "englandwales"
	CountryScotland     Country = "scotland"
)

var englandWalesOffices = []string{
	"Bristol",
	"Leeds",
	"London Central",
	"London East",
	"London South",
	"Manchester",
	"Midlands East",
	"Midlands West",
	"Newcastle",
	"Wales",
	"Watford",
}

var scotlandOffices = []string{
	"Aberdeen",
	"Dundee",
	"Edinburgh",
	"Glasgow",
}

// ParseCountry validates a request-supplied country value
func ParseCountry(s string) (Country, error) {
	switch Country(s) {
	case CountryEnglandWales:
		return CountryEnglandWales, nil
	case CountryScotland:
		return CountryScotland, nil
	}
	return "", fmt.Errorf("unsupported country %q", s)
}

// Other returns the opposite jurisdiction, used by cross-country transfers
func (c Country) Other() Country {
	if c == CountryEnglandWales {
		return CountryScotland
	}
	return CountryEnglandWales
}

// Offices returns the administrative offices of the jurisdiction
func (c Country) Offices() []string {
	if c == CountryScotland {
		return scotlandOffices
	}
	return englandWalesOffices
}

// ValidOffice reports whether office is an administrative office of the jurisdiction
func (c Country) ValidOffice(office string) bool {
	for _, o := range c.Offices() {
		if o == office {
			return true
		}
	}
	return false
}

// ReferencePrefix is the leading digits of references minted in the jurisdiction
func (c Country) ReferencePrefix() string {
	if c == CountryScotland {
		return "84"
	}
	return "24"
}
