// Package strategy holds the players' strategy profiles: for every current
// state, the probability that each proposer suggests each next state, and
// the probability that each committee member accepts.
//
// Tables are stored as CSV with two header rows, laid out like the tables
// of the paper:
//
//	state,kind,player,Proposer W,Proposer W,...,Proposer C
//	,,,( ),(TC),...,(WTC)
//	( ),Proposition,,1,0,...,0
//	( ),Acceptance,W,,,0,...
//
// An empty acceptance cell means the responder is not in the approval
// committee of that move. DeriveEffectivity reads committees off those
// cells; Fill then zeroes the gaps before probabilities are computed.
package strategy
