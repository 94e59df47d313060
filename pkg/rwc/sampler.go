package rwc

import "math/rand"

// SampleSize returns floor(percent * sideLen), the number of starting nodes drawn per side.
func SampleSize(percent float64, sideLen int) int {
	if percent <= 0 || sideLen <= 0 {
		return 0
	}
	return int(percent * float64(sideLen))
}

// SampleWithReplacement draws size nodes uniformly from side. The same node may appear more than once.
func SampleWithReplacement(rng *rand.Rand, side []int, size int) []int {
	if size <= 0 || len(side) == 0 {
		return []int{}
	}

	sample := make([]int, size)
	for i := range sample {
		sample[i] = side[rng.Intn(len(side))]
	}
	return sample
}

// Terminals is the multiset of sampled nodes that end a walk.
// A single occurrence of one node can be excluded, which is how a walk
// skips its own starting position without hiding duplicates of it.
// Storage is proportional to the number of distinct sampled nodes.
type Terminals struct {
	counts  map[int]int32
	size    int
	exclude int
}

// NewTerminals builds the terminal multiset for a sample
func NewTerminals(sample []int) Terminals {
	t := Terminals{
		counts:  make(map[int]int32, len(sample)),
		exclude: -1,
	}
	for _, node := range sample {
		t.counts[node]++
		t.size++
	}
	return t
}

// Without returns a view of t with one occurrence of node removed
func (t Terminals) Without(node int) Terminals {
	t.exclude = node
	return t
}

// Contains reports whether node is still a member of the multiset
func (t Terminals) Contains(node int) bool {
	c := t.counts[node]
	if node == t.exclude {
		c--
	}
	return c > 0
}

// Len returns the number of occurrences in the multiset
func (t Terminals) Len() int {
	if t.exclude >= 0 && t.counts[t.exclude] > 0 {
		return t.size - 1
	}
	return t.size
}
