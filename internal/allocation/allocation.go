// Package allocation turns observed phoneme frequencies into a target number
// of picks per phoneme.
package allocation

import (
	"errors"
	"fmt"
	"sort"

	"phonocover/internal/phoneme"
)

// ErrTotalTooSmall is returned when the total cannot give every phoneme a slot.
var ErrTotalTooSmall = errors.New("allocation total smaller than phoneme inventory")

// Slot is the target for one phoneme.
type Slot struct {
	Phoneme phoneme.Phoneme `json:"phoneme"`
	Target  int             `json:"target"`
	// Observed is the input frequency and Share its fraction of all
	// observations.
	Observed int     `json:"observed"`
	Share    float64 `json:"share"`
}

// Plan is an allocation in inventory order.
type Plan struct {
	Total int    `json:"total"`
	Slots []Slot `json:"slots"`
}

// Allocate gives every phoneme one slot and splits the remaining total-39
// proportionally to observed frequency using the largest-remainder method.
// Equal remainders go to the phoneme earlier in the inventory. With no
// observations the remainder is split evenly.
func Allocate(observed map[phoneme.Phoneme]int, total int) (Plan, error) {
	if total < phoneme.Size {
		return Plan{}, fmt.Errorf("%w: %d < %d", ErrTotalTooSmall, total, phoneme.Size)
	}
	inv := phoneme.Inventory()
	weights := make([]int, len(inv))
	sum := 0
	for i, p := range inv {
		n := max(observed[p], 0)
		weights[i] = n
		sum += n
	}
	if sum == 0 {
		for i := range weights {
			weights[i] = 1
		}
		sum = len(weights)
	}

	remaining := total - len(inv)
	plan := Plan{Total: total, Slots: make([]Slot, len(inv))}
	type rem struct {
		index int
		frac  int
	}
	rems := make([]rem, len(inv))
	given := 0
	for i, p := range inv {
		extra := weights[i] * remaining / sum
		given += extra
		rems[i] = rem{index: i, frac: weights[i] * remaining % sum}
		plan.Slots[i] = Slot{Phoneme: p, Target: 1 + extra, Observed: max(observed[p], 0)}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; i < remaining-given; i++ {
		plan.Slots[rems[i].index].Target++
	}

	observedSum := 0
	for _, s := range plan.Slots {
		observedSum += s.Observed
	}
	if observedSum > 0 {
		for i := range plan.Slots {
			plan.Slots[i].Share = float64(plan.Slots[i].Observed) / float64(observedSum)
		}
	}
	return plan, nil
}

// Target returns the target for p, or 0 for a non-canonical symbol.
func (p Plan) Target(ph phoneme.Phoneme) int {
	i := phoneme.Index(ph)
	if i < 0 || i >= len(p.Slots) {
		return 0
	}
	return p.Slots[i].Target
}

// Gap compares current counts against the plan.
type Gap struct {
	Phoneme phoneme.Phoneme `json:"phoneme"`
	Target  int             `json:"target"`
	Current int             `json:"current"`
}

// Delta is current minus target.
func (g Gap) Delta() int { return g.Current - g.Target }

// Diff returns the phonemes below target and those above it, each in
// inventory order.
func (p Plan) Diff(current map[phoneme.Phoneme]int) (missing, excess []Gap) {
	for _, s := range p.Slots {
		g := Gap{Phoneme: s.Phoneme, Target: s.Target, Current: current[s.Phoneme]}
		switch {
		case g.Current < g.Target:
			missing = append(missing, g)
		case g.Current > g.Target:
			excess = append(excess, g)
		}
	}
	return missing, excess
}
