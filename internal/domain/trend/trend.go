// Package trend computes ordered-sequence analytics over a participant's
// chronological rank history: streaks, least-squares trend, and improvement.
package trend

import (
	"github.com/okian/podium/internal/domain/model"
)

// Minimum sample sizes. Below these the corresponding metric is absent and
// must not feed any rule predicate.
const (
	regressionMinPoints  = 3
	improvementMinPoints = 4
)

// Slope cutoffs for direction classification. Ranks decrease as results get
// better, so a negative slope means improvement.
const (
	improvingSlope = -0.1
	decliningSlope = 0.1
)

// Direction classifies the regression slope.
type Direction string

const (
	DirectionImproving Direction = "improving"
	DirectionDeclining Direction = "declining"
	DirectionStable    Direction = "stable"
)

// Trend carries sequence analytics. HasRegression and HasImprovement flag
// whether the respective metrics are defined; absent metrics are zero-valued
// and carry no meaning.
type Trend struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	RSquared  float64   `json:"r_squared"`
	Direction Direction `json:"direction"`

	HasRegression bool `json:"has_regression"`

	// MaxWinStreak and MaxPodiumStreak count consecutive qualifying calendar
	// years over the scored-year sequence. A win streak is always a podium
	// streak, so MaxWinStreak <= MaxPodiumStreak.
	MaxWinStreak    int `json:"max_win_streak"`
	MaxPodiumStreak int `json:"max_podium_streak"`

	// Improvement = mean(first half) - mean(second half) of the chronological
	// sequence; positive means ranks got numerically lower over time.
	Improvement    float64 `json:"improvement"`
	HasImprovement bool    `json:"has_improvement"`
}

// Compute derives trend analytics.
//
// seq is the participant's chronological rank sequence over attended scored
// competitions. rankByYear indexes ranks by calendar year, and scoredYears
// lists every scored year of the dataset in ascending order; together they
// drive the calendar-year streak rule: missing a scored year breaks a
// streak, while cancelled years are simply not present and never break one.
func Compute(seq []model.Rank, rankByYear map[int]model.Rank, scoredYears []int) Trend {
	t := Trend{Direction: DirectionStable}

	t.MaxWinStreak = maxStreak(rankByYear, scoredYears, func(r model.Rank) bool { return r == model.RankGold })
	t.MaxPodiumStreak = maxStreak(rankByYear, scoredYears, func(r model.Rank) bool { return r.Medal() })

	if n := len(seq); n >= regressionMinPoints {
		t.Slope, t.Intercept, t.RSquared = regress(seq)
		t.HasRegression = true
		switch {
		case t.Slope < improvingSlope:
			t.Direction = DirectionImproving
		case t.Slope > decliningSlope:
			t.Direction = DirectionDeclining
		default:
			t.Direction = DirectionStable
		}
	}

	if n := len(seq); n >= improvementMinPoints {
		half := n / 2
		t.Improvement = mean(seq[:half]) - mean(seq[half:])
		t.HasImprovement = true
	}

	return t
}

// maxStreak returns the longest run of consecutive scored years whose rank
// satisfies qualify. Non-participation in a scored year resets the run.
func maxStreak(rankByYear map[int]model.Rank, scoredYears []int, qualify func(model.Rank) bool) int {
	best, cur := 0, 0
	for _, year := range scoredYears {
		rank, ok := rankByYear[year]
		if ok && qualify(rank) {
			cur++
			if cur > best {
				best = cur
			}
			continue
		}
		cur = 0
	}
	return best
}

// regress runs ordinary least squares of rank against sequence index 0..n-1.
// R-squared is 1 - SSres/SStot, with the convention that a constant sequence
// (SStot == 0) yields 0.
func regress(seq []model.Rank) (slope, intercept, rSquared float64) {
	n := float64(len(seq))

	var sumX, sumY, sumXY, sumXX float64
	for i, r := range seq {
		x, y := float64(i), float64(r)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, r := range seq {
		y := float64(r)
		fit := slope*float64(i) + intercept
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot == 0 {
		return slope, intercept, 0
	}
	return slope, intercept, 1 - ssRes/ssTot
}

func mean(seq []model.Rank) float64 {
	if len(seq) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range seq {
		sum += float64(r)
	}
	return sum / float64(len(seq))
}
