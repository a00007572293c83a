// Package aircraft resolves IATA equipment type codes into display names
// for providers that report only the code.
package aircraft

var names = map[string]string{
	"319": "Airbus A319",
	"320": "Airbus A320",
	"321": "Airbus A321",
	"32N": "Airbus A320neo",
	"32Q": "Airbus A321neo",
	"330": "Airbus A330",
	"332": "Airbus A330-200",
	"333": "Airbus A330-300",
	"343": "Airbus A340-300",
	"359": "Airbus A350-900",
	"388": "Airbus A380-800",
	"733": "Boeing 737-300",
	"734": "Boeing 737-400",
	"735": "Boeing 737-500",
	"737": "Boeing 737",
	"738": "Boeing 737-800",
	"739": "Boeing 737-900",
	"7M8": "Boeing 737 MAX 8",
	"744": "Boeing 747-400",
	"752": "Boeing 757-200",
	"763": "Boeing 767-300",
	"772": "Boeing 777-200",
	"77W": "Boeing 777-300ER",
	"788": "Boeing 787-8",
	"789": "Boeing 787-9",
	"AT7": "ATR 72",
	"CR9": "Bombardier CRJ-900",
	"DH4": "De Havilland Dash 8-400",
	"E75": "Embraer 175",
	"E90": "Embraer 190",
	"SU9": "Sukhoi Superjet 100",
}

// Lookup returns the display name for an equipment code, or nil when the
// code is unknown. Unknown codes never fail a segment.
func Lookup(code string) *string {
	name, ok := names[code]
	if !ok {
		return nil
	}

	return &name
}
