package sprint

import "github.com/vovakirdan/blockfall/internal/core"

// Rand is the random source used by the queue. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Queue is the seven-slot piece randomizer. Slots from the cursor to the end
// hold what is left of the current bag; slots before the cursor already hold
// the start of the next one. Every run of seven pops starting at cursor zero
// deals each kind exactly once.
type Queue struct {
	slots  [NumKinds]Kind
	cursor int
	rng    Rand
}

// NewQueue fills the slots with a random permutation of the seven kinds.
func NewQueue(rng Rand) *Queue {
	q := &Queue{rng: rng}
	bag := [NumKinds]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
	for i := NumKinds - 1; i > 0; i-- {
		r := rng.Intn(i + 1)
		q.slots[NumKinds-1-i] = bag[r]
		bag[r] = bag[i]
	}
	q.slots[NumKinds-1] = bag[0]
	return q
}

// Pop returns the next kind and refills its slot with a kind drawn
// uniformly from those not already dealt in the current cycle.
func (q *Queue) Pop() Kind {
	next := q.slots[q.cursor]

	var dealt [NumKinds]bool
	for _, k := range q.slots[:q.cursor] {
		dealt[k] = true
	}
	candidates := make([]Kind, 0, NumKinds)
	for k := Kind(0); k < NumKinds; k++ {
		if !dealt[k] {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		panic("sprint: queue has no kind left to deal")
	}

	q.slots[q.cursor] = candidates[q.rng.Intn(len(candidates))]
	q.cursor = (q.cursor + 1) % NumKinds
	return next
}

// Preview returns the next n kinds without consuming them.
func (q *Queue) Preview(n int) []Kind {
	n = core.Clamp(n, 0, NumKinds)
	out := make([]Kind, n)
	for i := range out {
		out[i] = q.slots[(q.cursor+i)%NumKinds]
	}
	return out
}

// Valid reports whether both bag segments hold distinct kinds.
func (q *Queue) Valid() bool {
	return distinct(q.slots[:q.cursor]) && distinct(q.slots[q.cursor:])
}

func distinct(kinds []Kind) bool {
	var seen [NumKinds]bool
	for _, k := range kinds {
		if int(k) >= NumKinds || seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}
