package roster

import "fmt"

// ShiftCode is the state a staff member is in on a single day
type ShiftCode int

const (
	DayLead ShiftCode = iota
	Day
	NightLead
	Night
	Rest
	Vacation
)

// Hours credited for each working group
const (
	DayShiftHours   = 8
	NightShiftHours = 13
)

var shiftLabels = map[ShiftCode]string{
	DayLead:   "DL",
	Day:       "D",
	NightLead: "NL",
	Night:     "N",
	Rest:      "R",
	Vacation:  "V",
}

// String returns the short label used by the store and the renderers
func (s ShiftCode) String() string {
	if label, ok := shiftLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("ShiftCode(%d)", int(s))
}

// ParseShiftCode is the inverse of String
func ParseShiftCode(label string) (ShiftCode, error) {
	for code, l := range shiftLabels {
		if l == label {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shift code %q", ErrInvalidInput, label)
}

// IsDayWorking reports whether the code belongs to the day-working group
func (s ShiftCode) IsDayWorking() bool {
	return s == DayLead || s == Day
}

// IsNightWorking reports whether the code belongs to the night-working group
func (s ShiftCode) IsNightWorking() bool {
	return s == NightLead || s == Night
}

func (s ShiftCode) IsWorking() bool {
	return s.IsDayWorking() || s.IsNightWorking()
}

func (s ShiftCode) IsOff() bool {
	return s == Rest || s == Vacation
}

func (s ShiftCode) IsLead() bool {
	return s == DayLead || s == NightLead
}

// Hours returns the working hours credited for the code
func (s ShiftCode) Hours() int {
	switch {
	case s.IsDayWorking():
		return DayShiftHours
	case s.IsNightWorking():
		return NightShiftHours
	default:
		return 0
	}
}
