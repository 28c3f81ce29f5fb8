// Package state describes the states of the coalition game: a coalition
// structure over all countries plus the rule deciding which coalition gets
// to deploy geoengineering.
//
// A state's static payoffs follow from a single number, the deployment
// level G chosen by its strongest coalition:
//
//	WeakGovernance  the coalition with the highest preferred G wins;
//	PowerThreshold  the coalition with the highest power share wins, and
//	                deploys only if that share reaches MinPower.
//
// Ties are broken by coalition declaration order.
package state
