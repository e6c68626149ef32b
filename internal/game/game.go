package game

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"fmt"
)

// Symbol represents the mark of a player (X, O) or an empty cell.
type Symbol string

const (
	// Player symbols
	None    Symbol = ""
	PlayerX Symbol = "X"
	PlayerO Symbol = "O"

	// BoardSize is the number of cells on the board.
	BoardSize = 9
)

// Board is the 3x3 grid laid out row by row.
type Board [BoardSize]Symbol

// Cells returns the board as a slice, the shape it takes on the wire.
func (b Board) Cells() []Symbol {
	cells := make([]Symbol, BoardSize)
	copy(cells, b[:])
	return cells
}

// Opponent returns the other player's symbol.
func (s Symbol) Opponent() Symbol {
	if s == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Valid reports whether s is one of the two player symbols.
func (s Symbol) Valid() bool {
	return s == PlayerX || s == PlayerO
}

var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

type Game struct {
	Board   Board
	Turn    Symbol
	Winner  Symbol
	Players map[Symbol]string
}

// NewGame returns an empty game. X always moves first.
func NewGame() *Game {
	return &Game{
		Turn:    PlayerX,
		Winner:  None,
		Players: make(map[Symbol]string, 2),
	}
}

// AddPlayer seats name under symbol.
func (g *Game) AddPlayer(symbol Symbol, name string) error {
	if _, ok := g.Players[symbol]; ok {
		return apperror.ErrGameFull
	}
	g.Players[symbol] = name
	return nil
}

// HasPlayer reports whether symbol is already taken.
func (g *Game) HasPlayer(symbol Symbol) bool {
	_, ok := g.Players[symbol]
	return ok
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.Players = make(map[Symbol]string, len(g.Players))
	for symbol, name := range g.Players {
		c.Players[symbol] = name
	}
	return &c
}

// Move places symbol at position and flips the turn.
// The turn flips from the current turn, not from symbol.
func (g *Game) Move(position int, symbol Symbol) error {
	if g.Winner != None {
		return apperror.ErrGameFinished
	}
	if position < 0 || position >= BoardSize {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPosition, position)
	}
	if g.Board[position] != None {
		return apperror.ErrCellOccupied
	}

	g.Board[position] = symbol
	g.Winner = CheckWinner(g.Board)
	g.Turn = g.Turn.Opponent()
	return nil
}

// CheckWinner returns the symbol holding a full line, or None.
func CheckWinner(b Board) Symbol {
	for _, line := range winningLines {
		a := b[line[0]]
		if a != None && a == b[line[1]] && a == b[line[2]] {
			return a
		}
	}
	return None
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(b Board) bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}
