package tui

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/game"

	lip "github.com/charmbracelet/lipgloss"
)

var (
	xStyle      = lip.NewStyle().Foreground(lip.Color("#8BE9FD"))            // cyan
	oStyle      = lip.NewStyle().Foreground(lip.Color("#FF79C6"))            // pink
	headerStyle = lip.NewStyle().Foreground(lip.Color("#F1FA8C")).Bold(true) // yellow
	footerStyle = lip.NewStyle().Foreground(lip.Color("#6272A4")).Bold(true)
	cellStyle   = lip.NewStyle().Foreground(lip.Color("#BD93F9"))
	cursorStyle = lip.NewStyle().Background(lip.Color("#44475A")).Foreground(lip.Color("#F8F8F2")).Bold(true)
	focusStyle  = lip.NewStyle().Foreground(lip.Color("#50FA7B")).Bold(true)
	closedStyle = lip.NewStyle().Foreground(lip.Color("#FF5555")).Bold(true)

	alertStyle = lip.NewStyle().
			Border(lip.RoundedBorder()).
			BorderForeground(lip.Color("#FFB86C")).
			Padding(1, 3)
)

func symbolStyle(s game.Symbol) lip.Style {
	switch s {
	case game.PlayerX:
		return xStyle
	case game.PlayerO:
		return oStyle
	default:
		return cellStyle
	}
}
