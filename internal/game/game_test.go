package game

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/apperror"
	"errors"
	"testing"
)

const (
	x = PlayerX
	o = PlayerO
	n = None
)

func TestCheckWinner(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Symbol
	}{
		{
			name:  "No winner - empty board",
			board: Board{},
			want:  None,
		},
		{
			name: "No winner - partial board",
			board: Board{
				x, n, n,
				n, o, n,
				n, n, n,
			},
			want: None,
		},
		{
			name: "X wins - first row",
			board: Board{
				x, x, x,
				n, o, n,
				n, n, o,
			},
			want: PlayerX,
		},
		{
			name: "O wins - second column",
			board: Board{
				x, o, n,
				x, o, n,
				n, o, n,
			},
			want: PlayerO,
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				x, n, n,
				n, x, n,
				n, n, x,
			},
			want: PlayerX,
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				n, n, o,
				n, o, n,
				o, n, n,
			},
			want: PlayerO,
		},
		{
			name: "No winner - full board",
			board: Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckWinner(tt.board); got != tt.want {
				t.Errorf("CheckWinner() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBoardFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "Empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name:  "Partial board is not full",
			board: Board{x, n, n, n, o, n, n, n, n},
			want:  false,
		},
		{
			name:  "Full board is full",
			board: Board{x, o, x, x, o, o, o, x, x},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBoardFull(tt.board); got != tt.want {
				t.Errorf("IsBoardFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGame_Move(t *testing.T) {
	g := NewGame()
	if g.Turn != PlayerX {
		t.Fatalf("expected X to start, got %q", g.Turn)
	}

	if err := g.Move(4, PlayerX); err != nil {
		t.Fatalf("Move() unexpected error: %v", err)
	}
	if g.Board[4] != PlayerX {
		t.Errorf("expected cell 4 to hold X, got %q", g.Board[4])
	}
	if g.Turn != PlayerO {
		t.Errorf("expected turn to flip to O, got %q", g.Turn)
	}

	if err := g.Move(4, PlayerO); !errors.Is(err, apperror.ErrCellOccupied) {
		t.Errorf("expected ErrCellOccupied, got %v", err)
	}
	if err := g.Move(9, PlayerO); !errors.Is(err, apperror.ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if err := g.Move(-1, PlayerO); !errors.Is(err, apperror.ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if g.Turn != PlayerO {
		t.Errorf("rejected moves must not flip the turn, got %q", g.Turn)
	}
}

func TestGame_MoveAfterWin(t *testing.T) {
	g := NewGame()
	moves := []struct {
		pos    int
		symbol Symbol
	}{
		{0, x}, {3, o}, {1, x}, {4, o}, {2, x},
	}
	for _, m := range moves {
		if err := g.Move(m.pos, m.symbol); err != nil {
			t.Fatalf("Move(%d, %s) unexpected error: %v", m.pos, m.symbol, err)
		}
	}

	if g.Winner != PlayerX {
		t.Fatalf("expected X to win, got %q", g.Winner)
	}
	if err := g.Move(8, PlayerO); !errors.Is(err, apperror.ErrGameFinished) {
		t.Errorf("expected ErrGameFinished, got %v", err)
	}
}

func TestGame_AddPlayer(t *testing.T) {
	g := NewGame()
	if err := g.AddPlayer(PlayerX, "alice"); err != nil {
		t.Fatalf("AddPlayer() unexpected error: %v", err)
	}
	if !g.HasPlayer(PlayerX) || g.HasPlayer(PlayerO) {
		t.Errorf("unexpected seats: %v", g.Players)
	}
	if err := g.AddPlayer(PlayerX, "bob"); !errors.Is(err, apperror.ErrGameFull) {
		t.Errorf("expected ErrGameFull, got %v", err)
	}
}

func TestSymbol_Opponent(t *testing.T) {
	if PlayerX.Opponent() != PlayerO || PlayerO.Opponent() != PlayerX {
		t.Error("Opponent() should swap X and O")
	}
	if !PlayerX.Valid() || !PlayerO.Valid() || None.Valid() || Symbol("Z").Valid() {
		t.Error("Valid() should only accept X and O")
	}
}
