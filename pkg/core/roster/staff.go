package roster

import "slices"

// Category tags a staff member with a role or membership
type Category string

const (
	SystemRole        Category = "system"
	SecurityRole      Category = "security"
	RegularTeamMember Category = "team"
	SupportMember     Category = "support"
)

// Categories lists every known category
var Categories = []Category{SystemRole, SecurityRole, RegularTeamMember, SupportMember}

// StaffMember is a single person in the staff pool. Names are opaque to the
// scheduler, which only looks at categories.
type StaffMember struct {
	Name       string
	Team       string
	Categories []Category
}

// Has reports whether the member is tagged with the category
func (m StaffMember) Has(c Category) bool {
	return slices.Contains(m.Categories, c)
}

// StaffRoster is the immutable, ordered staff pool
type StaffRoster struct {
	members []StaffMember
}

// NewStaffRoster copies the members so later changes by the caller are not
// observed by the roster
func NewStaffRoster(members []StaffMember) *StaffRoster {
	copied := make([]StaffMember, len(members))
	for i, m := range members {
		copied[i] = StaffMember{
			Name:       m.Name,
			Team:       m.Team,
			Categories: slices.Clone(m.Categories),
		}
	}
	return &StaffRoster{members: copied}
}

func (r *StaffRoster) Len() int {
	return len(r.members)
}

// Member returns a copy of the member at index i
func (r *StaffRoster) Member(i int) StaffMember {
	m := r.members[i]
	m.Categories = slices.Clone(m.Categories)
	return m
}

// Has reports whether staff i is tagged with the category
func (r *StaffRoster) Has(i int, c Category) bool {
	return r.members[i].Has(c)
}

// Names returns the member names in roster order
func (r *StaffRoster) Names() []string {
	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.Name
	}
	return names
}

// LeadPriority orders staff for the lead slot of a working group.
// Lower values lead first: support staff take precedence over everyone else.
func (r *StaffRoster) LeadPriority(i int) int {
	if r.Has(i, SupportMember) {
		return 0
	}
	return 1
}
