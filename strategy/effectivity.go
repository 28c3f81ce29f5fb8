package strategy

// Effectivity is the effectivity correspondence: for every move, the
// players whose approval it needs.
type Effectivity struct {
	players    []string
	committees map[Move][]string
}

// DeriveEffectivity reads committees off a table before it is filled: a
// responder belongs to the committee of a move when its acceptance cell is
// non-empty. A proposer always belongs to the committee of staying put.
func DeriveEffectivity(t *Table) *Effectivity {
	e := &Effectivity{
		players:    append([]string(nil), t.Players...),
		committees: make(map[Move][]string),
	}
	for _, i := range t.Players {
		for _, x := range t.States {
			for _, y := range t.States {
				m := Move{Proposer: i, From: x, To: y}
				var members []string
				for _, j := range t.Players {
					_, ok := t.Acceptance(m, j)
					if ok || (x == y && j == i) {
						members = append(members, j)
					}
				}
				e.committees[m] = members
			}
		}
	}

	return e
}

// Committee returns the approval committee of m in player order.
func (e *Effectivity) Committee(m Move) []string {
	return e.committees[m]
}

// IsMember reports whether responder is on the committee of m.
func (e *Effectivity) IsMember(m Move, responder string) bool {
	return contains(e.committees[m], responder)
}
