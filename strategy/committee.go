package strategy

// Committee returns the approval committee of a move. from and to list the
// members of the non-singleton coalition of the current and next state.
//
//   - Staying put needs only the proposer.
//   - Leaving a coalition is unilateral: the leaver decides alone. A
//     two-member coalition dissolves at the request of either member.
//   - Joining, growing or switching coalitions needs every other member of
//     the resulting coalition, and the proposer must be one of them.
//
// A nil result means the proposer cannot bring the move about.
func Committee(players []string, proposer string, from, to []string) []string {
	switch {
	case sameSet(from, to):
		return []string{proposer}
	case subset(to, from):
		leavers := difference(from, to)
		if len(to) == 0 && len(from) == 2 {
			if contains(from, proposer) {
				return []string{proposer}
			}
			return nil
		}
		if len(leavers) == 1 && leavers[0] == proposer {
			return []string{proposer}
		}
		return nil
	default:
		if !contains(to, proposer) {
			return nil
		}
		var out []string
		for _, p := range players {
			if p != proposer && contains(to, p) {
				out = append(out, p)
			}
		}
		return out
	}
}

// Template builds a table where every proposer stays put, and every
// committee member of every other move rejects it.
func Template(players, states []string, members map[string][]string) (*Table, error) {
	t := NewTable(players, states)
	for _, i := range players {
		for _, x := range states {
			for _, y := range states {
				m := Move{Proposer: i, From: x, To: y}
				p := 0.0
				if x == y {
					p = 1
				}
				if err := t.SetProposal(m, p); err != nil {
					return nil, err
				}
				if x == y {
					continue
				}
				for _, j := range Committee(players, i, members[x], members[y]) {
					if err := t.SetAcceptance(m, j, 0); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return t, nil
}

func subset(a, b []string) bool {
	for _, v := range a {
		if !contains(b, v) {
			return false
		}
	}

	return true
}

func sameSet(a, b []string) bool {
	return subset(a, b) && subset(b, a)
}

func difference(a, b []string) []string {
	var out []string
	for _, v := range a {
		if !contains(b, v) {
			out = append(out, v)
		}
	}

	return out
}
