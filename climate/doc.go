// Package climate models the countries of the solar geoengineering game
// and the coalitions they form.
//
// 🚀 What is modelled?
//
//	Each country i has a pre-industrial temperature T_i^base, a
//	climate-induced warming Δ_i and an ideal temperature T_i^ideal. A
//	global geoengineering level G cools every country by G degrees, so a
//	country's ideal deployment is alpha_i = T_i^base + Δ_i − T_i^ideal.
//	Damages are quadratic in the distance to that ideal:
//
//	  damage_i(G) = d_i·(alpha_i − G)² − d_i·alpha_i²   (normalised, damage_i(0) = 0)
//	  payoff_i(G) = −damage_i(G)
//
// ✨ Coalitions
//
//	A coalition pools its members' global power shares gamma_i and, if it
//	gets to deploy, chooses the power- and damage-weighted average of the
//	members' ideal levels:
//
//	  G_S = Σ alpha_i·eta_i / Σ eta_i,  eta_i = gamma_i·d_i
//
// ⚙️ Usage:
//
//	w, _ := climate.NewCountry("W", 21.5, 3, 13, 1, 1.0/3)
//	t, _ := climate.NewCountry("T", 14, 3, 13, 1, 1.0/3)
//	wt := climate.NewCoalition(w, t)
//	g, _ := wt.AvgIdealG()   // 7.75
//	fmt.Println(w.Payoff(g))
package climate
