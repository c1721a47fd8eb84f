package scheduler

import (
	"context"
	"sort"
)

// candidate is one complete conflict-free class selection.
type candidate struct {
	classes []classUnit
}

// solver runs a minimum-remaining-values backtracking search: components
// are ordered smallest first so the most constrained choices are made
// early, and each component is shuffled so equally ranked schedules vary
// between requests.
type solver struct {
	components [][]classUnit
	conflicts  map[[2]string]struct{}
	depth      int
	found      []candidate
	count      int
	max        int
	ctx        context.Context
	cancelled  bool
}

// solve returns every conflict-free selection of one class per component,
// up to the engine's schedule cap.
func (r *run) solve(ctx context.Context, components [][]classUnit) []candidate {
	ordered := make([][]classUnit, len(components))
	copy(ordered, components)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) < len(ordered[j]) })
	for i := range ordered {
		shuffled := make([]classUnit, len(ordered[i]))
		copy(shuffled, ordered[i])
		r.rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		ordered[i] = shuffled
	}
	s := &solver{
		components: ordered,
		conflicts:  r.conflicts,
		depth:      len(ordered) - 1,
		max:        r.eng.cfg.MaxSchedules,
		ctx:        ctx,
	}
	if len(ordered) > 0 {
		s.descend(nil, 0)
	}
	return s.found
}

func (s *solver) descend(curr []classUnit, index int) {
	if s.cancelled {
		return
	}
	for _, c := range s.components[index] {
		valid := true
		for _, picked := range curr {
			if _, conflict := s.conflicts[[2]string{c.id, picked.id}]; conflict {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		if index == s.depth {
			complete := make([]classUnit, len(curr)+1)
			copy(complete, curr)
			complete[len(curr)] = c
			s.found = append(s.found, candidate{classes: complete})
			s.count++
			if s.count%1024 == 0 && s.ctx.Err() != nil {
				s.cancelled = true
				return
			}
			continue
		}
		if s.count <= s.max {
			s.descend(append(curr, c), index+1)
		}
	}
}
