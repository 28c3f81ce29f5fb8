// Package equilibrium evaluates strategy profiles and checks whether they
// form a farsighted equilibrium.
//
// A profile is an equilibrium when, given the value functions it induces:
//
//	proposals  every next state a proposer chooses with positive
//	           probability maximises p·V(next) + (1 − p)·V(current),
//	           p being the probability the move is approved;
//	approvals  committee members accept moves that raise their value,
//	           reject moves that lower it, and may mix when indifferent.
//
// Search finds such a profile among pure strategies by best-response
// iteration starting from "everybody stays".
package equilibrium
