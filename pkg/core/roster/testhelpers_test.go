package roster

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newTestStaff builds a roster with one member per category list
func newTestStaff(categories ...[]Category) *StaffRoster {
	members := make([]StaffMember, len(categories))
	for i, cats := range categories {
		members[i] = StaffMember{Name: fmt.Sprintf("staff-%d", i), Categories: cats}
	}
	return NewStaffRoster(members)
}

// newSixteenStaffProblem mirrors a realistic month: four regular teams of a
// system and a security member, plus eight support members
func newSixteenStaffProblem(t *testing.T, dayCount int, vacations VacationMask) *Problem {
	t.Helper()

	var cats [][]Category
	offsets := RotationOffsets{}
	for team := 0; team < 4; team++ {
		cats = append(cats,
			[]Category{SystemRole, RegularTeamMember},
			[]Category{SecurityRole, RegularTeamMember},
		)
		offsets[team*2] = team
		offsets[team*2+1] = team
	}
	for i := 0; i < 4; i++ {
		cats = append(cats, []Category{SystemRole, SupportMember})
		offsets[8+i] = i
	}
	for i := 0; i < 4; i++ {
		cats = append(cats, []Category{SecurityRole, SupportMember})
		offsets[12+i] = i
	}

	problem, err := NewProblem(newTestStaff(cats...), dayCount, vacations, offsets)
	require.NoError(t, err)
	return problem
}
