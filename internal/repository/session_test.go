package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRejected = errors.New("rejected")

func newSession(id string) *entity.Session {
	game := entity.GameState{Turn: entity.PlayerX, Outcome: entity.InProgress()}

	return entity.NewSession(id, game, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a new session
	session := newSession("123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key expires with the ttl
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session with a move played
		session := newSession("123")
		session.Game.Board[4] = entity.PlayerX
		session.Game.Turn = entity.PlayerO

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved session
		require.NoError(t, err)
		assert.Equal(t, session.Game, retrieved.Game)
		assert.True(t, session.CreatedAt.Equal(retrieved.CreatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newSession("123")))

		// When: Update marks a cell
		updated, err := sessionRepo.Update(ctx, "123", func(session *entity.Session) error {
			session.Game.Board[0] = entity.PlayerX
			return nil
		})

		// Then: the change is returned and stored
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, updated.Game.Board[0])

		stored, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, stored.Game.Board[0])
	})

	t.Run("Update_Aborted", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newSession("123")))

		// When: the update function changes the session and then fails
		updated, err := sessionRepo.Update(ctx, "123", func(session *entity.Session) error {
			session.Game.Board[0] = entity.PlayerX
			return errRejected
		})

		// Then: its error is returned and nothing is written
		require.ErrorIs(t, err, errRejected)
		assert.Nil(t, updated)

		stored, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.Game.Board[0])
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: Update is called with non-existent ID
		_, err := sessionRepo.Update(ctx, "9999999", func(*entity.Session) error {
			t.Fatal("update function must not be called")
			return nil
		})

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Update_Concurrent", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newSession("123")))

		// When: several writers each claim the first free cell at once
		const writers = 3

		var wg sync.WaitGroup
		errs := make(chan error, writers)

		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := sessionRepo.Update(ctx, "123", func(session *entity.Session) error {
					for i, cell := range session.Game.Board {
						if cell == entity.EmptyCell {
							session.Game.Board[i] = entity.PlayerX
							return nil
						}
					}
					return errRejected
				})
				errs <- err
			}()
		}

		wg.Wait()
		close(errs)

		// Then: every successful writer claimed its own cell
		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, apperror.ErrConcurrentUpdate)
		}

		stored, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		marked := 0
		for _, cell := range stored.Game.Board {
			if cell == entity.PlayerX {
				marked++
			}
		}
		assert.Equal(t, succeeded, marked)
		assert.Positive(t, succeeded)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session
		session := newSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
