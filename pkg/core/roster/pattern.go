package roster

// PatternSymbol is one step of the idealised rotation cycle
type PatternSymbol int

const (
	PatternDay PatternSymbol = iota
	PatternNight
	PatternRest
)

// CycleLength is the number of days in the rotation cycle
const CycleLength = 4

// CyclePattern is the idealised [Day, Night, Rest, Rest] rotation
var CyclePattern = [CycleLength]PatternSymbol{PatternDay, PatternNight, PatternRest, PatternRest}

// ExpectedSymbol returns the pattern symbol for a staff member with the given
// rotation offset on the given day
func ExpectedSymbol(offset, day int) PatternSymbol {
	return CyclePattern[(day+offset)%CycleLength]
}

// Matches reports whether an actual shift code satisfies a pattern symbol.
// Vacation never matches; callers skip vacation days themselves.
func (p PatternSymbol) Matches(code ShiftCode) bool {
	switch p {
	case PatternDay:
		return code.IsDayWorking()
	case PatternNight:
		return code.IsNightWorking()
	case PatternRest:
		return code == Rest
	}
	return false
}

func (p PatternSymbol) String() string {
	switch p {
	case PatternDay:
		return "Day"
	case PatternNight:
		return "Night"
	case PatternRest:
		return "Rest"
	}
	return "Unknown"
}
