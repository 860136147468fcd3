package match

import "math"

const (
	skillWeight    = 0.4
	interestWeight = 0.4
	ageWeight      = 0.2

	// Age gap at which age compatibility reaches zero.
	maxAgeGap = 20.0
)

// Features are the attributes two users are compared on.
type Features struct {
	UserID      int64
	Age         *int
	SkillIDs    []int64
	InterestIDs []int64
}

// Compatibility scores a and b in [0, 1], rounded to three places.
func Compatibility(a, b *Features) float64 {
	score := skillWeight*Jaccard(a.SkillIDs, b.SkillIDs) +
		interestWeight*Jaccard(a.InterestIDs, b.InterestIDs) +
		ageWeight*AgeCompatibility(a.Age, b.Age)
	return Round(score, 3)
}

// Jaccard returns |a∩b| / |a∪b| over the distinct values of a and b.
// Two empty sets are identical; one empty set shares nothing.
func Jaccard(a, b []int64) float64 {
	setA := toSet(a)
	setB := toSet(b)

	switch {
	case len(setA) == 0 && len(setB) == 0:
		return 1
	case len(setA) == 0 || len(setB) == 0:
		return 0
	}

	intersection := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// AgeCompatibility is 1 when either age is unknown and falls linearly to 0
// as the gap grows to twenty years.
func AgeCompatibility(a, b *int) float64 {
	if a == nil || b == nil {
		return 1
	}

	gap := math.Abs(float64(*a - *b))
	return math.Max(0, 1-gap/maxAgeGap)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
