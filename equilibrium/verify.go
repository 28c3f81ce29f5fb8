package equilibrium

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/farsight/internal/numeric"
	"github.com/katalvlaran/farsight/strategy"
)

// PassedMessage is the single message of a passing Report.
const PassedMessage = "All tests passed."

// Report is the outcome of Verify.
type Report struct {
	OK       bool
	Messages []string
}

// String joins the messages, one per line.
func (r Report) String() string {
	return strings.Join(r.Messages, "\n")
}

// Verify runs both consistency checks on an evaluated profile.
func Verify(players, states []string, o *Outcome) Report {
	var msgs []string
	if ok, msg := VerifyProposals(players, states, o); !ok {
		msgs = append(msgs, msg)
	}
	if ok, msg := VerifyApprovals(players, states, o); !ok {
		msgs = append(msgs, msg)
	}
	if len(msgs) > 0 {
		return Report{OK: false, Messages: msgs}
	}

	return Report{OK: true, Messages: []string{PassedMessage}}
}

// VerifyProposals checks that proposers only propose best moves. It stops
// at the first violation.
func VerifyProposals(players, states []string, o *Outcome) (bool, string) {
	for pi, i := range players {
		col, err := o.V.ColIndex(i)
		if err != nil {
			return false, err.Error()
		}
		for xi, x := range states {
			var positive []string
			expected := make([]float64, len(states))
			best := 0.0
			for yi, y := range states {
				if o.Probabilities.Proposals[pi][xi][yi] > 0 {
					positive = append(positive, y)
				}
				pa := o.Probabilities.Approvals[pi][xi][yi]
				expected[yi] = pa*o.V.Data[yi][col] + (1-pa)*o.V.Data[xi][col]
				if yi == 0 || expected[yi] > best {
					best = expected[yi]
				}
			}

			var argmax []string
			for yi, y := range states {
				if numeric.IsClose(expected[yi], best, numeric.DefaultAtol) {
					argmax = append(argmax, y)
				}
			}
			if !subset(positive, argmax) {
				return false, fmt.Sprintf("Proposal strategy error with player %s! "+
					"In state %s, positive probability on state(s) %s, but the argmax states are: %s. \n"+
					"The value functions V are: \n%s",
					i, x, listing(positive), listing(argmax), o.V)
			}
		}
	}

	return true, "Test passed."
}

// VerifyApprovals checks every committee member's acceptance against its
// values. It stops at the first violation.
func VerifyApprovals(players, states []string, o *Outcome) (bool, string) {
	for _, i := range players {
		for xi, x := range states {
			for yi, y := range states {
				m := strategy.Move{Proposer: i, From: x, To: y}
				for _, j := range o.Effectivity.Committee(m) {
					col, err := o.V.ColIndex(j)
					if err != nil {
						return false, err.Error()
					}
					vCur, vNext := o.V.Data[xi][col], o.V.Data[yi][col]
					p, _ := o.Table.Acceptance(m, j)

					var passed bool
					switch {
					case numeric.IsClose(vNext, vCur, numeric.DefaultAtol):
						passed = numeric.InUnit(p)
					case vNext > vCur:
						passed = p == 1
					default:
						passed = p == 0
					}
					if !passed {
						return false, fmt.Sprintf("Approval strategy error with player %s! "+
							"When player %s proposes the transition %s -> %s, the values are "+
							"V(current) = %.5f and V(next) = %.5f, but approval probability is %g.",
							j, i, x, y, vCur, vNext, p)
					}
				}
			}
		}
	}

	return true, "Test passed."
}

func subset(a, b []string) bool {
	for _, v := range a {
		found := false
		for _, w := range b {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func listing(names []string) string {
	quoted := make([]string, len(names))
	for k, n := range names {
		quoted[k] = "'" + n + "'"
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
