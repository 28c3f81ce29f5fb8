// Package experiment wires the model together: it builds countries and
// states from a Config, reads the experiment's strategy table, evaluates
// it and verifies that it is an equilibrium.
//
// Suites of experiments are described in YAML. The built-in suite
// reproduces the four experiments of the paper; a suite file replaces it:
//
//	base:
//	  players: [W, T, C]
//	  discounting: 0.99
//	  ...
//	experiments:
//	  - name: weak_governance
//	    power_rule: weak_governance
//	    strategy_table: weak_governance.csv
//	    ...
package experiment
