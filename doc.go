// Package farsight reproduces the numerical results of a three-country model
// of solar geoengineering governance with farsighted coalition formation.
//
// 🚀 What is modelled?
//
//	Three countries (W = warm, T = temperate, C = cold) can form coalitions.
//	In every coalition structure (state) the strongest coalition deploys
//	geoengineering at its preferred level G, which fixes every country's
//	static payoff. Players take turns proposing moves to other states; an
//	approval committee accepts or rejects. A strategy table fixes these
//	choices, and the induced Markov chain gives each player a value
//	function. The table is an equilibrium when nobody gains by deviating.
//
// ✨ Pipeline
//
//	climate/      - countries, coalitions, payoff model
//	state/        - coalition structures, power rules, deployment levels
//	strategy/     - strategy tables (CSV), effectivity, committee rule
//	transition/   - transition probabilities of a strategy profile
//	mdp/          - value functions via LU solve (matrix/)
//	equilibrium/  - verification and best-response search
//	experiment/   - YAML experiment suite, Build / Run
//	report/       - CSV and LaTeX result tables, run summary
//	frame/        - labelled tables shared by the above
//	cmd/farsight/ - command-line entry point
//
// Quick start:
//
//	go run ./cmd/farsight                 # evaluate the shipped tables
//	go run ./cmd/farsight generate -o out # search equilibria from scratch
package farsight
