package rwc

// ProbabilityRow holds P(land | start) for one starting community
type ProbabilityRow struct {
	Community1 float64 `json:"community1"`
	Community2 float64 `json:"community2"`
}

// Probabilities holds the four conditional probabilities.
// community1 maps to side1 and community2 to side2.
type Probabilities struct {
	Community1 ProbabilityRow `json:"community1"`
	Community2 ProbabilityRow `json:"community2"`
}

// Report is the summary of a run in its external JSON shape
type Report struct {
	RWCScore      float64       `json:"rwc_score"`
	Frequencies   Tally         `json:"frequencies"`
	Probabilities Probabilities `json:"probabilities"`
}

// ConditionalProbabilities estimates P(land=L | start=S) as
// count(S,L) / (count(side1,L) + count(side2,L)). A zero denominator yields 0.
func ConditionalProbabilities(t Tally) Probabilities {
	a := t.Side1.Side1
	b := t.Side1.Side2
	c := t.Side2.Side1
	d := t.Side2.Side2

	var p Probabilities
	if a+c != 0 {
		p.Community1.Community1 = float64(a) / float64(a+c)
		p.Community2.Community1 = float64(c) / float64(a+c)
	}
	if b+d != 0 {
		p.Community1.Community2 = float64(b) / float64(b+d)
		p.Community2.Community2 = float64(d) / float64(b+d)
	}
	return p
}

// Score converts a tally into the RWC score and its probabilities
func Score(t Tally) (float64, Probabilities) {
	p := ConditionalProbabilities(t)
	pxx := p.Community1.Community1
	pxy := p.Community1.Community2
	pyx := p.Community2.Community1
	pyy := p.Community2.Community2

	// explicit conversions keep the products from being fused
	score := float64(pxx*pyy) - float64(pxy*pyx)
	return score, p
}

// NewReport scores a tally and packs it into a Report
func NewReport(t Tally) Report {
	score, p := Score(t)
	return Report{
		RWCScore:      score,
		Frequencies:   t,
		Probabilities: p,
	}
}
