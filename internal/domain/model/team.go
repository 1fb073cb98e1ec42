package model

// Team is one group produced by a distribution. Members keep their own
// skill data; the team does not derive or own it.
type Team struct {
	Name    string   `json:"name"`
	Members []Person `json:"members"`
}

// Size returns the member count.
func (t Team) Size() int { return len(t.Members) }

// AverageSkillLevel is the mean of the members' average skill levels.
func (t Team) AverageSkillLevel() float64 {
	if len(t.Members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range t.Members {
		sum += m.AverageSkillLevel
	}
	return sum / float64(len(t.Members))
}

// Surnames lists members in draft order.
func (t Team) Surnames() []string {
	out := make([]string, len(t.Members))
	for i, m := range t.Members {
		out[i] = m.Surname
	}
	return out
}
