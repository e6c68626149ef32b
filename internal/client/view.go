package client

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"fmt"
)

// Screen is the part of the UI that is visible.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenBoard
)

const (
	infoGameStarted = "Game started!"
	infoWaiting     = "Your move or wait for opponent..."
)

// View is what the front-end draws. It is rebuilt from server snapshots only.
type View struct {
	Screen        Screen
	GameIDText    string
	Cells         []game.Symbol
	CurrentPlayer string
	YouPlayBy     string
	Info          string
}

func (v View) clone() View {
	if v.Cells != nil {
		v.Cells = append([]game.Symbol(nil), v.Cells...)
	}
	return v
}

// renderBoard throws away the previous cells and builds new ones from board.
func (v *View) renderBoard(board []game.Symbol) {
	cells := make([]game.Symbol, len(board))
	copy(cells, board)
	v.Cells = cells
}

func (v *View) updateInfoPanel(currentPlayer, youPlayBy game.Symbol, info string) {
	v.CurrentPlayer = fmt.Sprintf("Current Player: %s", currentPlayer)
	v.YouPlayBy = fmt.Sprintf("You play by: %s", youPlayBy)
	v.Info = fmt.Sprintf("Info: %s", info)
}

func wonInfo(winner game.Symbol) string {
	return fmt.Sprintf("Player %s won!", winner)
}
