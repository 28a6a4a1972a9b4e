package picks

import (
	"phonocover/internal/allocation"
	"phonocover/internal/phoneme"
)

// Pick is one list item with its pronunciation.
type Pick struct {
	Item     string            `json:"item"`
	Phonemes []phoneme.Phoneme `json:"phonemes"`
	Resolved bool              `json:"resolved"`
}

// Status compares the picks' phoneme distribution with an allocation plan.
type Status struct {
	Picks   []Pick                  `json:"picks"`
	Current map[phoneme.Phoneme]int `json:"current"`
	Missing []allocation.Gap        `json:"missing"`
	Excess  []allocation.Gap        `json:"excess"`
	// Achieved counts phonemes at or above their target.
	Achieved     int `json:"achieved"`
	TotalCurrent int `json:"total_current"`
	TotalTarget  int `json:"total_target"`
}

// Distribution resolves every pick and counts phonemes. Items that no longer
// resolve, for example after a dictionary change, are listed unresolved and
// contribute nothing.
func (s *Store) Distribution() ([]Pick, map[phoneme.Phoneme]int) {
	items := s.List()
	picks := make([]Pick, 0, len(items))
	counts := make(map[phoneme.Phoneme]int)
	for _, item := range items {
		phones, err := s.Resolve(item)
		if err != nil {
			picks = append(picks, Pick{Item: item})
			continue
		}
		picks = append(picks, Pick{Item: item, Phonemes: phones, Resolved: true})
		for _, p := range phones {
			counts[p]++
		}
	}
	return picks, counts
}

// Status reports progress toward plan.
func (s *Store) Status(plan allocation.Plan) Status {
	picks, counts := s.Distribution()
	missing, excess := plan.Diff(counts)
	st := Status{
		Picks:   picks,
		Current: counts,
		Missing: missing,
		Excess:  excess,
	}
	for _, slot := range plan.Slots {
		st.TotalTarget += slot.Target
		if counts[slot.Phoneme] >= slot.Target {
			st.Achieved++
		}
	}
	for _, n := range counts {
		st.TotalCurrent += n
	}
	return st
}
