package fitness

// BaseScore is the score of a roster with no penalties
const BaseScore = 5000

// Default criterion weights
const (
	WeightRoleBalance     = 500
	WeightRestAfterNight  = 50000
	WeightRotationCycle   = 500
	WeightLeaderPriority  = 300
	WeightConsecutiveWork = 100
	WeightConsecutiveOff  = 50
	WeightWorkingHours    = 5
)

// Weights configures the deduction per penalty unit of each criterion
type Weights struct {
	RoleBalance     float64
	RestAfterNight  float64
	RotationCycle   float64
	LeaderPriority  float64
	ConsecutiveWork float64
	ConsecutiveOff  float64
	WorkingHours    float64
}

// DefaultWeights returns the standard weighting, where resting after a night
// shift dominates every other rule
func DefaultWeights() Weights {
	return Weights{
		RoleBalance:     WeightRoleBalance,
		RestAfterNight:  WeightRestAfterNight,
		RotationCycle:   WeightRotationCycle,
		LeaderPriority:  WeightLeaderPriority,
		ConsecutiveWork: WeightConsecutiveWork,
		ConsecutiveOff:  WeightConsecutiveOff,
		WorkingHours:    WeightWorkingHours,
	}
}
