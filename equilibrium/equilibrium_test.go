package equilibrium_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/farsight/equilibrium"
	"github.com/katalvlaran/farsight/frame"
	"github.com/katalvlaran/farsight/strategy"
	"github.com/katalvlaran/farsight/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	players = []string{"W", "T", "C"}
	states  = []string{"( )", "(TC)", "(WC)", "(WT)", "(WTC)"}
	members = map[string][]string{
		"(TC)":  {"T", "C"},
		"(WC)":  {"W", "C"},
		"(WT)":  {"W", "T"},
		"(WTC)": {"W", "T", "C"},
	}
	protocol = map[string]float64{"W": 1.0 / 3, "T": 1.0 / 3, "C": 1.0 / 3}

	// Static payoffs shared by both main-text experiments in the coalition states.
	mainCoalitionPayoffs = [][]float64{
		{107.25, 9.75, -22.75},
		{118.1875, 1.937500000000007, -36.812499999999986},
		{98.22222222222221, 13.222222222222225, -15.111111111111107},
	}
)

func game(t *testing.T, unanimity bool, payoffs [][]float64) equilibrium.Game {
	t.Helper()
	f, err := frame.FromData("payoffs", states, players, payoffs)
	require.NoError(t, err)

	return equilibrium.Game{
		Params: transition.Params{
			Players: players, States: states, Protocol: protocol,
			Unanimity: unanimity, Members: members,
		},
		Payoffs:     f,
		Discounting: 0.99,
	}
}

func weakGovernance(t *testing.T) equilibrium.Game {
	noDeal := []float64{132.25, -40.25, -97.75}
	return game(t, true, append([][]float64{noDeal, noDeal}, mainCoalitionPayoffs...))
}

func powerThreshold(t *testing.T) equilibrium.Game {
	return game(t, true, append([][]float64{{0, 0, 0}, {55.6875, 14.4375, 0.6875}}, mainCoalitionPayoffs...))
}

func withoutUnanimity(t *testing.T) equilibrium.Game {
	return game(t, false, [][]float64{
		{0, 0, 0},
		{43.574074074074076, 18.45679012345679, 0.32098765432098775},
		{74.69770408163265, 16.014030612244895, -16.117346938775515},
		{82.7080078125, 10.112304687500007, -25.97265624999999},
		{67.90494791666666, 18.643663194444446, -10.293402777777773},
	})
}

func tablePath(name string) string {
	return filepath.Join("..", "strategy_tables", name+".csv")
}

func evaluate(t *testing.T, g equilibrium.Game, table string) *equilibrium.Outcome {
	t.Helper()
	tbl, err := strategy.ReadFile(tablePath(table), players, states)
	require.NoError(t, err)
	o, err := equilibrium.Evaluate(g, tbl)
	require.NoError(t, err)

	return o
}

func TestEvaluate_WeakGovernance(t *testing.T) {
	o := evaluate(t, weakGovernance(t), "weak_governance")

	want := [][]float64{
		{132.25, -40.25, -97.75},
		{132.25, -40.25, -97.75},
		{131.51470588235287, -38.77941176470586, -95.54411764705878},
		{131.83639705882348, -39.00919117647057, -95.95772058823525},
		{131.2491830065359, -38.67728758169933, -95.31944444444441},
	}
	for i := range want {
		for j := range want[i] {
			assert.InDeltaf(t, want[i][j], o.V.Data[i][j], 1e-9, "V[%s][%s]", states[i], players[j])
		}
	}
}

func TestVerify_ShippedTables(t *testing.T) {
	tests := []struct {
		name  string
		game  func(*testing.T) equilibrium.Game
		table string
	}{
		{"weak governance", weakGovernance, "weak_governance"},
		{"power threshold", powerThreshold, "power_threshold"},
		{"without unanimity", withoutUnanimity, "power_threshold_no_unanimity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := evaluate(t, tc.game(t), tc.table)
			r := equilibrium.Verify(players, states, o)
			assert.True(t, r.OK, r.String())
			assert.Equal(t, []string{equilibrium.PassedMessage}, r.Messages)
		})
	}
}

func TestVerifyApprovals_Violation(t *testing.T) {
	o := evaluate(t, weakGovernance(t), "weak_governance")

	// W gains from leaving (WC), so it must accept its own proposal.
	require.NoError(t, o.Table.SetAcceptance(strategy.Move{Proposer: "W", From: "(WC)", To: "( )"}, "W", 0))

	ok, msg := equilibrium.VerifyApprovals(players, states, o)
	assert.False(t, ok)
	assert.Contains(t, msg, "Approval strategy error with player W! When player W proposes the transition (WC) -> ( )")
	assert.Contains(t, msg, "V(current) = 131.51471 and V(next) = 132.25000")

	r := equilibrium.Verify(players, states, o)
	assert.False(t, r.OK)
	assert.Len(t, r.Messages, 1)
}

func TestVerifyProposals_Violation(t *testing.T) {
	o := evaluate(t, weakGovernance(t), "weak_governance")

	// W staying in (WC) is worse than breaking it up.
	o.Probabilities.Proposals[0][2][2] = 1

	ok, msg := equilibrium.VerifyProposals(players, states, o)
	assert.False(t, ok)
	assert.Contains(t, msg, "Proposal strategy error with player W! In state (WC), positive probability on state(s) ['( )', '(WC)']")
}

// Best-response iteration from the template lands on the shipped tables.
func TestSearch_FindsShippedTables(t *testing.T) {
	tests := []struct {
		name  string
		game  func(*testing.T) equilibrium.Game
		table string
	}{
		{"weak governance", weakGovernance, "weak_governance"},
		{"power threshold", powerThreshold, "power_threshold"},
		{"without unanimity", withoutUnanimity, "power_threshold_no_unanimity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found, err := equilibrium.Search(tc.game(t), 0)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, strategy.Write(&buf, found))
			want, err := os.ReadFile(tablePath(tc.table))
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(string(want), buf.String()))
		})
	}
}

func TestSearch_NoConvergence(t *testing.T) {
	_, err := equilibrium.Search(powerThreshold(t), 1)
	assert.ErrorIs(t, err, equilibrium.ErrNoConvergence)
}

func TestEvaluate_LabelMismatch(t *testing.T) {
	g := weakGovernance(t)
	g.Players = []string{"T", "W", "C"}
	tbl, err := strategy.Template(players, states, members)
	require.NoError(t, err)

	_, err = equilibrium.Evaluate(g, tbl)
	assert.ErrorIs(t, err, equilibrium.ErrLabels)
}
