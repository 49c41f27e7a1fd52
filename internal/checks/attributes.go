package checks

import "strconv"

// Attribute is one displayable trait of a check. Names are unique within
// a projection by construction; order matters only for display grouping.
type Attribute struct {
	Name  string
	Value string
}

// colorBandNames and gradientNames label the gene indices for metadata.
var colorBandNames = [7]string{"Eighty", "Sixty", "Forty", "Twenty", "Ten", "Five", "One"}

var gradientNames = [7]string{"None", "Linear", "Double Linear", "Reflected", "Double Angled", "Angled", "Linear Z"}

// ProjectAttributes flattens a check into its trait list. Unrevealed
// checks expose only their structural traits; gene and animation traits
// appear once randomness is meaningful.
func ProjectAttributes(c *Check) []Attribute {
	attrs := make([]Attribute, 0, 6)

	if c.IsRevealed && c.HasManyChecks() {
		attrs = append(attrs,
			Attribute{Name: "Color Band", Value: colorBandNames[c.ColorBand]},
			Attribute{Name: "Gradient", Value: gradientNames[c.Gradient]},
		)
	}
	if c.IsRevealed && c.ChecksCount() > 0 {
		attrs = append(attrs,
			Attribute{Name: "Speed", Value: speedLabel(c.Speed)},
			Attribute{Name: "Shift", Value: shiftLabel(c.Direction)},
		)
	}
	attrs = append(attrs,
		Attribute{Name: "Checks", Value: strconv.Itoa(c.ChecksCount())},
		Attribute{Name: "Day", Value: strconv.Itoa(int(c.Stored.Day))},
	)
	return attrs
}

func speedLabel(speed uint8) string {
	switch speed {
	case 4:
		return "2x"
	case 2:
		return "1x"
	default:
		return "0.5x"
	}
}

func shiftLabel(direction uint8) string {
	if direction == 0 {
		return "IR"
	}
	return "UV"
}
