package player

//go:generate mockgen -source=player.go -destination=mocks/mock_connection.go -package=mocks

// Connection is an interface that abstracts the websocket connection.
// *websocket.Conn satisfies it on both ends of the stream.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player is one live stream attached to a match.
type Player struct {
	ID      string
	MatchID string
	Conn    Connection
}

// NewPlayer creates a player for a freshly accepted connection.
func NewPlayer(id, matchID string, conn Connection) *Player {
	return &Player{
		ID:      id,
		MatchID: matchID,
		Conn:    conn,
	}
}
