package rwc

// Side identifies one of the two partitions
type Side int

const (
	Side1 Side = iota
	Side2
)

func (s Side) String() string {
	if s == Side2 {
		return "side2"
	}
	return "side1"
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == Side1 {
		return Side2
	}
	return Side1
}

// FrequencyRow counts where walks started on one side landed
type FrequencyRow struct {
	Side1 int `json:"side1"`
	Side2 int `json:"side2"`
}

// Tally is the 2x2 (start side, landing side) frequency table.
// The zero value is an empty tally.
type Tally struct {
	Side1 FrequencyRow `json:"side1"`
	Side2 FrequencyRow `json:"side2"`
}

func (t *Tally) row(start Side) *FrequencyRow {
	if start == Side2 {
		return &t.Side2
	}
	return &t.Side1
}

// Record counts one walk that started on start and landed on land
func (t *Tally) Record(start, land Side) {
	r := t.row(start)
	if land == Side2 {
		r.Side2++
	} else {
		r.Side1++
	}
}

// Count returns the number of walks from start that landed on land
func (t Tally) Count(start, land Side) int {
	r := t.row(start)
	if land == Side2 {
		return r.Side2
	}
	return r.Side1
}

// RowSum returns the number of walks that started on a side
func (t Tally) RowSum(start Side) int {
	r := t.row(start)
	return r.Side1 + r.Side2
}

// Total returns the number of recorded walks
func (t Tally) Total() int {
	return t.RowSum(Side1) + t.RowSum(Side2)
}

// Add returns the elementwise sum of two tallies
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Side1: FrequencyRow{Side1: t.Side1.Side1 + o.Side1.Side1, Side2: t.Side1.Side2 + o.Side1.Side2},
		Side2: FrequencyRow{Side1: t.Side2.Side1 + o.Side2.Side1, Side2: t.Side2.Side2 + o.Side2.Side2},
	}
}

// Combine reduces batch tallies into a grand tally. Integer sums make the
// result independent of grouping and order.
func Combine(tallies ...Tally) Tally {
	var total Tally
	for _, t := range tallies {
		total = total.Add(t)
	}
	return total
}
