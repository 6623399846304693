package optimize

import "sort"

// Rank returns the feasible candidates sorted by score, best first. Equal
// scores keep grid order (area ascending, then volume ascending), so Rank(p,
// 1) agrees with Search. limit <= 0 returns every feasible candidate.
func (o *Optimizer) Rank(p Problem, limit int) ([]Candidate, error) {
	out := make([]Candidate, 0, o.areas.Len()*o.volumes.Len())
	_, _, err := o.walk(p, func(c Candidate) {
		out = append(out, c)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
