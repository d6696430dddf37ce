package tictactoe

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")

	// WinCombos - rows, then columns, then diagonals. The order decides which
	// triple is reported when a board satisfies more than one.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Reset - returns the state of a fresh game: empty board, X to move.
func Reset() entity.GameState {
	return entity.GameState{
		Board:   entity.Board{},
		Turn:    entity.PlayerX,
		Outcome: entity.InProgress(),
	}
}

// ApplyMove - places the current player's mark on cell. An illegal move is not
// an error: the state is returned unchanged.
func ApplyMove(state entity.GameState, cell int) entity.GameState {
	next, _ := TryMove(state, cell)

	return next
}

// TryMove - same as ApplyMove, reporting whether the move was accepted.
func TryMove(state entity.GameState, cell int) (entity.GameState, bool) {
	if MoveError(state, cell) != nil {
		return state, false
	}

	state.Board[cell] = state.Turn
	state.Outcome = CheckOutcome(state.Board)

	// the mover keeps the turn once the game is over
	if state.Outcome.IsInProgress() {
		state.Turn = state.Turn.Opponent()
	}

	return state, true
}

// MoveError - explains why ApplyMove would reject the move, nil if it is legal.
func MoveError(state entity.GameState, cell int) error {
	if state.Outcome.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !state.Outcome.IsInProgress() || !state.Turn.IsPlayer() {
		return apperror.ErrGameIsNotStarted
	}

	if cell < 0 || cell >= len(state.Board) {
		return ErrInvalidCell
	}

	if state.Board[cell] != entity.EmptyCell {
		return ErrCellOccupied
	}

	return nil
}

func CheckOutcome(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Win(a)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}
