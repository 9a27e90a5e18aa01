package activity

import "github.com/planforge/aps-go/internal/domain/shared"

// ScoreFactor is one line of a composite optimization score: the factor
// name, its signed contribution, and its share of the total.
type ScoreFactor struct {
	Factor  string
	Score   float64
	Percent float64
}

// ScoreBoard keeps the per-candidate-resource composite score breakdown
// for one activity. Scores for a resource are cleared and recomputed every
// time that resource is scored.
type ScoreBoard struct {
	factors map[shared.ResourceKey][]ScoreFactor
	totals  map[shared.ResourceKey]float64
}

// NewScoreBoard creates an empty score board.
func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{
		factors: make(map[shared.ResourceKey][]ScoreFactor),
		totals:  make(map[shared.ResourceKey]float64),
	}
}

// BeginScoring clears any previous breakdown for the resource.
func (b *ScoreBoard) BeginScoring(resource shared.ResourceKey) {
	delete(b.factors, resource)
	delete(b.totals, resource)
}

// AddFactor appends one factor line and accumulates the total.
func (b *ScoreBoard) AddFactor(resource shared.ResourceKey, factor string, score, percent float64) {
	b.factors[resource] = append(b.factors[resource], ScoreFactor{Factor: factor, Score: score, Percent: percent})
	b.totals[resource] += score
}

// Factors returns the ordered factor lines for a resource.
func (b *ScoreBoard) Factors(resource shared.ResourceKey) []ScoreFactor {
	out := make([]ScoreFactor, len(b.factors[resource]))
	copy(out, b.factors[resource])
	return out
}

// Total returns the derived total score for a resource.
func (b *ScoreBoard) Total(resource shared.ResourceKey) float64 {
	return b.totals[resource]
}

// Clear drops every breakdown, used when a fresh scoring round starts.
func (b *ScoreBoard) Clear() {
	b.factors = make(map[shared.ResourceKey][]ScoreFactor)
	b.totals = make(map[shared.ResourceKey]float64)
}
