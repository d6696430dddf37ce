package entity

import "time"

// Session is one hot-seat game held for a single client between resets.
type Session struct {
	ID        string    `json:"id"`
	Game      GameState `json:"game"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, game GameState, now time.Time) *Session {
	return &Session{
		ID:        id,
		Game:      game,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
