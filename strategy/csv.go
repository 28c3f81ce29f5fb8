package strategy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// KindProposition labels a state's proposal row.
	KindProposition = "Proposition"
	// KindAcceptance labels a responder's acceptance row.
	KindAcceptance = "Acceptance"

	proposerPrefix = "Proposer "
	indexColumns   = 3
)

var indexHeader = [indexColumns]string{"state", "kind", "player"}

type column struct {
	proposer, next string
}

type rowKey struct {
	state, kind, player string
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, players, states []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	defer f.Close()

	t, err := Read(f, players, states)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses a strategy table in the two-header CSV layout. Every
// (proposer, next state) column and every (state, kind, player) row must be
// present; values must be probabilities or empty.
func Read(r io.Reader, players, states []string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("want two header rows, got %d rows: %w", len(records), ErrHeader)
	}

	columns, err := parseHeader(records[0], records[1], players, states)
	if err != nil {
		return nil, err
	}

	t := NewTable(players, states)
	seen := make(map[rowKey]bool)
	for n, rec := range records[2:] {
		line := n + 3
		if len(rec) != len(records[0]) {
			return nil, fmt.Errorf("line %d: %d fields, want %d: %w", line, len(rec), len(records[0]), ErrHeader)
		}
		key := rowKey{state: strings.TrimSpace(rec[0]), kind: strings.TrimSpace(rec[1]), player: strings.TrimSpace(rec[2])}
		if err = checkRow(key, players, states); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[key] {
			return nil, fmt.Errorf("line %d: row %v: %w", line, key, ErrDuplicate)
		}
		seen[key] = true

		for k, col := range columns {
			cell := strings.TrimSpace(rec[indexColumns+k])
			if cell == "" {
				continue
			}
			p, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, %s%s %s: %q: %w", line, proposerPrefix, col.proposer, col.next, cell, ErrBadProbability)
			}
			m := Move{Proposer: col.proposer, From: key.state, To: col.next}
			if key.kind == KindProposition {
				err = t.SetProposal(m, p)
			} else {
				err = t.SetAcceptance(m, key.player, p)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}

	for _, x := range states {
		for _, key := range expectedRows(x, players) {
			if !seen[key] {
				return nil, fmt.Errorf("row (%s, %s, %s): %w", key.state, key.kind, key.player, ErrMissingRow)
			}
		}
	}
	if err = t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func parseHeader(top, sub []string, players, states []string) ([]column, error) {
	if len(top) < indexColumns || len(sub) != len(top) {
		return nil, ErrHeader
	}
	for k, want := range indexHeader {
		if strings.TrimSpace(top[k]) != want {
			return nil, fmt.Errorf("column %d is %q, want %q: %w", k+1, top[k], want, ErrHeader)
		}
	}

	columns := make([]column, 0, len(top)-indexColumns)
	seen := make(map[column]bool)
	for k := indexColumns; k < len(top); k++ {
		name := strings.TrimSpace(top[k])
		if !strings.HasPrefix(name, proposerPrefix) {
			return nil, fmt.Errorf("column %d is %q: %w", k+1, top[k], ErrHeader)
		}
		col := column{proposer: strings.TrimPrefix(name, proposerPrefix), next: strings.TrimSpace(sub[k])}
		if !contains(players, col.proposer) || !contains(states, col.next) {
			return nil, fmt.Errorf("column (%s, %s): %w", name, col.next, ErrUnknownLabel)
		}
		if seen[col] {
			return nil, fmt.Errorf("column (%s, %s): %w", name, col.next, ErrDuplicate)
		}
		seen[col] = true
		columns = append(columns, col)
	}
	for _, i := range players {
		for _, y := range states {
			if !seen[column{proposer: i, next: y}] {
				return nil, fmt.Errorf("column (%s%s, %s): %w", proposerPrefix, i, y, ErrMissingColumn)
			}
		}
	}

	return columns, nil
}

func checkRow(key rowKey, players, states []string) error {
	if !contains(states, key.state) {
		return fmt.Errorf("state %q: %w", key.state, ErrUnknownLabel)
	}
	switch key.kind {
	case KindProposition:
		if key.player != "" {
			return fmt.Errorf("proposition row with player %q: %w", key.player, ErrUnknownLabel)
		}
	case KindAcceptance:
		if !contains(players, key.player) {
			return fmt.Errorf("player %q: %w", key.player, ErrUnknownLabel)
		}
	default:
		return fmt.Errorf("kind %q: %w", key.kind, ErrUnknownLabel)
	}

	return nil
}

func expectedRows(state string, players []string) []rowKey {
	rows := []rowKey{{state: state, kind: KindProposition}}
	for _, j := range players {
		rows = append(rows, rowKey{state: state, kind: KindAcceptance, player: j})
	}

	return rows
}

// WriteFile writes t to path with Write.
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if err = Write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

// Write renders t in the layout accepted by Read. Rows and columns follow
// the table's player and state order.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	width := indexColumns + len(t.Players)*len(t.States)
	top := append(make([]string, 0, width), indexHeader[:]...)
	sub := append(make([]string, 0, width), "", "", "")
	for _, i := range t.Players {
		for _, y := range t.States {
			top = append(top, proposerPrefix+i)
			sub = append(sub, y)
		}
	}
	if err := cw.Write(top); err != nil {
		return err
	}
	if err := cw.Write(sub); err != nil {
		return err
	}

	for _, x := range t.States {
		rec := append(make([]string, 0, width), x, KindProposition, "")
		for _, i := range t.Players {
			for _, y := range t.States {
				rec = append(rec, formatProbability(t.Proposal(Move{Proposer: i, From: x, To: y})))
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}

		for _, j := range t.Players {
			rec = append(rec[:0], x, KindAcceptance, j)
			for _, i := range t.Players {
				for _, y := range t.States {
					cell := ""
					if p, ok := t.Acceptance(Move{Proposer: i, From: x, To: y}, j); ok {
						cell = formatProbability(p)
					}
					rec = append(rec, cell)
				}
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
