package domain

// A geocoded postal address. Only produced by a successful geocoding lookup.
type Address struct {
	Street      string      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	PostalCode  string      `json:"postal_code"`
	Country     string      `json:"country"`
	FullAddress string      `json:"full_address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Outcome of validating a free-text address.
//
// Error is set iff IsValid is false. Suggestions hold at most three alternate
// candidates, each already checked against the supported country bounds.
type AddressValidation struct {
	IsValid     bool      `json:"is_valid"`
	Address     *Address  `json:"address,omitempty"`
	Suggestions []Address `json:"suggestions"`
	Confidence  float64   `json:"confidence"`
	Error       string    `json:"error,omitempty"`
}

const (
	ErrMsgAddressRequired     = "Address is required"
	ErrMsgAddressNotFound     = "Address not found"
	ErrMsgOutsideCountry      = "Address coordinates are outside the supported country"
	ErrMsgGeocoderUnavailable = "Geocoding service unavailable"
)

// InvalidAddress builds a failed validation carrying a user-facing message.
func InvalidAddress(msg string) AddressValidation {
	return AddressValidation{
		IsValid:     false,
		Suggestions: []Address{},
		Error:       msg,
	}
}
