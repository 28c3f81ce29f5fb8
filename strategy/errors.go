package strategy

import (
	"errors"
	"fmt"
)

var (
	// ErrHeader indicates a malformed header row.
	ErrHeader = errors.New("strategy: malformed header")

	// ErrMissingColumn indicates a (proposer, next state) column absent from the table.
	ErrMissingColumn = errors.New("strategy: missing column")

	// ErrMissingRow indicates a (state, kind, player) row absent from the table.
	ErrMissingRow = errors.New("strategy: missing row")

	// ErrUnknownLabel indicates a row or column naming an unknown player, state or kind.
	ErrUnknownLabel = errors.New("strategy: unknown label")

	// ErrDuplicate indicates a row or column that appears twice.
	ErrDuplicate = errors.New("strategy: duplicate entry")

	// ErrBadProbability indicates a cell that is not a probability in [0,1].
	ErrBadProbability = errors.New("strategy: value is not a probability")

	// ErrProposalSum indicates proposal probabilities that do not sum to one.
	ErrProposalSum = errors.New("strategy: proposal probabilities must sum up to 1")
)

// Move is one proposed transition.
type Move struct {
	Proposer string
	From     string
	To       string
}

// String renders the move for messages.
func (m Move) String() string {
	return fmt.Sprintf("%s: %s -> %s", m.Proposer, m.From, m.To)
}
