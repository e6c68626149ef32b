package tui

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/client"
	"ctchen222/Tic-Tac-Toe-Online/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const gridWidth = 3

type focus int

const (
	focusName focus = iota
	focusGameID
	focusCreate
	focusJoin
	focusCount
)

// bootstrapMsg reports the end of a create or join request.
type bootstrapMsg struct{ err error }

// frameMsg carries one raw frame read from the match stream.
type frameMsg struct{ data []byte }

// streamClosedMsg is sent once the match stream stops delivering frames.
type streamClosedMsg struct{ err error }

// Model is the bubbletea program driving a client.Session.
type Model struct {
	ctx     context.Context
	session *client.Session
	logger  *slog.Logger

	focus  focus
	name   string
	gameID string
	cursor int
	alert  string
	busy   bool
	closed bool
}

// New returns a model showing the menu, with name prefilled.
func New(ctx context.Context, session *client.Session, name string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		ctx:     ctx,
		session: session,
		logger:  logger.With("component", "tui"),
		name:    name,
		cursor:  4,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Tic-Tac-Toe")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if err := m.session.Close(); err != nil {
				m.logger.Warn("error closing match stream", "error", err)
			}
			return m, tea.Quit
		}
		if m.alert != "" {
			switch msg.String() {
			case "enter", "esc":
				m.alert = ""
			}
			return m, nil
		}
		if m.session.View().Screen == client.ScreenBoard {
			return m.updateBoard(msg)
		}
		return m.updateMenu(msg)

	case bootstrapMsg:
		m.busy = false
		if msg.err != nil {
			var rejected *client.JoinRejectedError
			if errors.As(msg.err, &rejected) {
				m.alert = rejected.Reason
			} else {
				m.logger.Error("match bootstrap failed", "error", msg.err)
			}
			return m, nil
		}
		return m, m.waitForFrame()

	case frameMsg:
		// Malformed frames are logged by the session; keep reading.
		_ = m.session.HandleMessage(msg.data)
		return m, m.waitForFrame()

	case streamClosedMsg:
		m.closed = true
		m.logger.Info("match stream closed", "match.id", m.session.MatchID(), "error", msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % focusCount
	case "shift+tab", "up":
		m.focus = (m.focus + focusCount - 1) % focusCount
	case "enter":
		switch m.focus {
		case focusCreate:
			return m.bootstrap(false)
		case focusJoin:
			return m.bootstrap(true)
		default:
			m.focus++
		}
	case "backspace":
		if field := m.field(); field != nil && *field != "" {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
	default:
		field := m.field()
		if field == nil {
			break
		}
		switch msg.Type {
		case tea.KeyRunes:
			*field += string(msg.Runes)
		case tea.KeySpace:
			*field += " "
		}
	}
	return m, nil
}

func (m *Model) field() *string {
	switch m.focus {
	case focusName:
		return &m.name
	case focusGameID:
		return &m.gameID
	}
	return nil
}

func (m Model) bootstrap(join bool) (tea.Model, tea.Cmd) {
	if m.busy || m.session.MatchID() != "" {
		return m, nil
	}
	m.busy = true

	ctx, session, name, gameID := m.ctx, m.session, m.name, strings.TrimSpace(m.gameID)
	return m, func() tea.Msg {
		if join {
			return bootstrapMsg{err: session.JoinMatch(ctx, gameID, name)}
		}
		return bootstrapMsg{err: session.CreateMatch(ctx, name)}
	}
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up":
		if m.cursor >= gridWidth {
			m.cursor -= gridWidth
		}
	case "down":
		if m.cursor < game.BoardSize-gridWidth {
			m.cursor += gridWidth
		}
	case "left":
		if m.cursor%gridWidth > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor%gridWidth < gridWidth-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.selectCell(m.cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.cursor = int(key[0] - '1')
			return m, m.selectCell(m.cursor)
		}
	}
	return m, nil
}

func (m Model) selectCell(position int) tea.Cmd {
	ctx, session, logger := m.ctx, m.session, m.logger
	return func() tea.Msg {
		if err := session.SelectCell(ctx, position); err != nil {
			logger.Error("failed to send move", "move.position", position, "error", err)
		}
		return nil
	}
}

// waitForFrame blocks on the stream and hands the next frame to Update.
func (m Model) waitForFrame() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		data, err := session.ReadFrame()
		if err != nil {
			return streamClosedMsg{err: err}
		}
		return frameMsg{data: data}
	}
}

func (m Model) View() string {
	view := m.session.View()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Tic-Tac-Toe Online"))
	b.WriteString("\n\n")

	if view.Screen == client.ScreenBoard {
		m.renderBoard(&b, view)
	} else {
		m.renderMenu(&b, view)
	}

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Render(m.alert + "\n\n" + footerStyle.Render("enter: OK")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMenu(b *strings.Builder, view client.View) {
	fmt.Fprintf(b, "%s %s\n", m.label("Name:   ", focusName), m.input(m.name, focusName))
	fmt.Fprintf(b, "%s %s\n\n", m.label("Game ID:", focusGameID), m.input(m.gameID, focusGameID))
	fmt.Fprintf(b, "%s  %s\n", m.label("[ Create Game ]", focusCreate), m.label("[ Join Game ]", focusJoin))

	if view.GameIDText != "" {
		b.WriteString("\n" + headerStyle.Render(view.GameIDText) + "\n")
		b.WriteString(footerStyle.Render("Waiting for another player to join...") + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("tab: next field, enter: select, ctrl+c: quit") + "\n")
}

func (m Model) label(text string, f focus) string {
	if m.focus == f {
		return focusStyle.Render(text)
	}
	return text
}

func (m Model) input(value string, f focus) string {
	if m.focus == f {
		return "[" + value + "_]"
	}
	return "[" + value + "]"
}

func (m Model) renderBoard(b *strings.Builder, view client.View) {
	if view.GameIDText != "" {
		b.WriteString(view.GameIDText + "\n\n")
	}

	for i, cell := range view.Cells {
		content := string(cell)
		if cell == game.None {
			content = " "
		}
		text := "[" + content + "]"
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(text))
		} else {
			b.WriteString(symbolStyle(cell).Render(text))
		}
		if (i+1)%gridWidth == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + view.CurrentPlayer + "\n")
	b.WriteString(view.YouPlayBy + "\n")
	b.WriteString(view.Info + "\n")

	if m.closed {
		b.WriteString("\n" + closedStyle.Render("Connection closed.") + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("arrows/1-9: choose cell, enter: play, ctrl+c: quit") + "\n")
}
