package field

import "fmt"

// Style classifies a force vector for rendering.
type Style uint8

const (
	StyleRepulsive Style = iota
	StyleAttractive
	StyleResultant
)

// Classify maps a source charge to the style of its force arrow. The test
// charge is taken as positive, so only positive sources repel. Zero is drawn
// as attractive, with a zero-length arrow.
func Classify(q float64) Style {
	if q <= 0 {
		return StyleAttractive
	}
	return StyleRepulsive
}

// ClassifyAll classifies charges in q1..q4 order.
func ClassifyAll(charges [NumSources]float64) [NumSources]Style {
	var out [NumSources]Style
	for i, q := range charges {
		out[i] = Classify(q)
	}
	return out
}

func (s Style) String() string {
	switch s {
	case StyleRepulsive:
		return "repulsive"
	case StyleAttractive:
		return "attractive"
	case StyleResultant:
		return "resultant"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// Color is the conventional arrow color name.
func (s Style) Color() string {
	switch s {
	case StyleRepulsive:
		return "blue"
	case StyleAttractive:
		return "red"
	case StyleResultant:
		return "green"
	default:
		return "black"
	}
}

// Label is the legend text.
func (s Style) Label() string {
	switch s {
	case StyleRepulsive:
		return "Repulsive force"
	case StyleAttractive:
		return "Attractive force"
	case StyleResultant:
		return "Resultant force"
	default:
		return ""
	}
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	switch string(b) {
	case "repulsive":
		*s = StyleRepulsive
	case "attractive":
		*s = StyleAttractive
	case "resultant":
		*s = StyleResultant
	default:
		return fmt.Errorf("field: unknown style %q", b)
	}
	return nil
}
