package experiment

import (
	"fmt"
	"path/filepath"

	"github.com/katalvlaran/farsight/climate"
	"github.com/katalvlaran/farsight/equilibrium"
	"github.com/katalvlaran/farsight/frame"
	"github.com/katalvlaran/farsight/state"
	"github.com/katalvlaran/farsight/strategy"
	"github.com/katalvlaran/farsight/transition"
)

// Output variables of a Result.
const (
	VarV              = "V"
	VarPayoffs        = "payoffs"
	VarP              = "P"
	VarGeoengineering = "geoengineering"
)

// Variables lists every table a Result provides, in output order.
var Variables = []string{VarV, VarPayoffs, VarP, VarGeoengineering}

// Model is the static part of an experiment: everything that does not
// depend on the strategy table.
type Model struct {
	Config         Config
	Countries      []*climate.Country
	States         []*state.State
	Payoffs        *frame.Frame
	Geoengineering *frame.Frame
	Game           equilibrium.Game
}

// Result holds everything computed for one experiment.
type Result struct {
	*Model
	Outcome      *equilibrium.Outcome
	P            *frame.Frame
	Verification equilibrium.Report
}

// Build validates cfg and constructs countries, states and static payoffs.
func Build(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, err := state.ParsePowerRule(cfg.PowerRule)
	if err != nil {
		return nil, err
	}

	m := &Model{Config: cfg}
	byName := make(map[string]*climate.Country, len(cfg.Players))
	for _, p := range cfg.Players {
		c, err := climate.NewCountry(p, cfg.BaseTemp[p], cfg.DeltaTemp[p], cfg.IdealTemp[p], cfg.MarginalDamage[p], cfg.Power[p])
		if err != nil {
			return nil, err
		}
		m.Countries = append(m.Countries, c)
		byName[p] = c
	}

	members := make(map[string][]string, len(cfg.States))
	for _, spec := range cfg.States {
		coalitions := make([]*climate.Coalition, len(spec.Coalitions))
		for k, names := range spec.Coalitions {
			countries := make([]*climate.Country, len(names))
			for n, name := range names {
				countries[n] = byName[name]
			}
			coalitions[k] = climate.NewCoalition(countries...)
		}
		s, err := state.New(spec.Name, coalitions, m.Countries, rule, cfg.MinPower)
		if err != nil {
			return nil, err
		}
		m.States = append(m.States, s)
		members[s.Name] = s.Members()
	}

	if m.Payoffs, err = state.PayoffMatrix(m.States, cfg.Players); err != nil {
		return nil, err
	}
	if m.Geoengineering, err = state.DeploymentLevels(m.States); err != nil {
		return nil, err
	}

	m.Game = equilibrium.Game{
		Params: transition.Params{
			Players:   cfg.Players,
			States:    cfg.StateNames(),
			Protocol:  cfg.Protocol,
			Unanimity: cfg.UnanimityRequired,
			Members:   members,
		},
		Payoffs:     m.Payoffs,
		Discounting: cfg.Discounting,
	}

	return m, nil
}

// TablePath is the strategy table file of the experiment.
func (c *Config) TablePath() string {
	return filepath.Join(c.StrategyTableDir, c.StrategyTable)
}

// Run builds the model, reads the strategy table and evaluates it. A table
// that is not an equilibrium is not an error: see Result.Verification.
func Run(cfg Config) (*Result, error) {
	m, err := Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", cfg.Name, err)
	}
	table, err := strategy.ReadFile(cfg.TablePath(), cfg.Players, cfg.StateNames())
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", cfg.Name, err)
	}

	return m.Evaluate(table)
}

// Evaluate runs a strategy table against the model.
func (m *Model) Evaluate(table *strategy.Table) (*Result, error) {
	o, err := equilibrium.Evaluate(m.Game, table)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", m.Config.Name, err)
	}
	names := m.Config.StateNames()
	P, err := frame.FromData(VarP, names, names, o.Probabilities.P)
	if err != nil {
		return nil, err
	}

	return &Result{
		Model:        m,
		Outcome:      o,
		P:            P,
		Verification: equilibrium.Verify(m.Config.Players, names, o),
	}, nil
}

// ExperimentName names the result's output files.
func (r *Result) ExperimentName() string {
	return r.Config.ExperimentName
}

// Table returns one of the Variables.
func (r *Result) Table(variable string) (*frame.Frame, error) {
	switch variable {
	case VarV:
		return r.Outcome.V, nil
	case VarPayoffs:
		return r.Payoffs, nil
	case VarP:
		return r.P, nil
	case VarGeoengineering:
		return r.Geoengineering, nil
	default:
		return nil, fmt.Errorf("experiment %s: variable %q: %w", r.Config.Name, variable, frame.ErrUnknownLabel)
	}
}
