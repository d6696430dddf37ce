package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, id string, fn func(session *entity.Session) error) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager - runs hot-seat games on behalf of a single client each.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	now   func() time.Time
	newID func() string
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,

		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (that *SessionManager) NewSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(that.newID(), tictactoe.Reset(), that.now().UTC())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session_id", session.ID)

	return session, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, apperror.ErrSessionIDRequired
	}

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// MakeMove - plays the current player's mark on cell. A rejected move leaves
// the session untouched and reports why.
func (that *SessionManager) MakeMove(ctx context.Context, id string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeMove", "session_id", id, "cell", cell)

	if id == "" {
		return nil, apperror.ErrSessionIDRequired
	}

	session, err := that.sessionRepo.Update(ctx, id, func(session *entity.Session) error {
		if err := tictactoe.MoveError(session.Game, cell); err != nil {
			return err
		}

		session.Game = tictactoe.ApplyMove(session.Game, cell)
		session.UpdatedAt = that.now().UTC()

		return nil
	})
	if err != nil {
		log.Debug("move rejected", "error", err)
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if session.Game.IsFinished() {
		log.Info("game finished", "status", session.Game.Outcome.Status, "winner", session.Game.Outcome.Winner)
	}

	return session, nil
}

// ResetSession - replaces the session's game with a fresh one, whatever its state.
func (that *SessionManager) ResetSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, apperror.ErrSessionIDRequired
	}

	session, err := that.sessionRepo.Update(ctx, id, func(session *entity.Session) error {
		session.Game = tictactoe.Reset()
		session.UpdatedAt = that.now().UTC()

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}

	that.logger.Info("session reset", "session_id", id)

	return session, nil
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	if id == "" {
		return apperror.ErrSessionIDRequired
	}

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.logger.Info("session ended", "session_id", id)

	return nil
}
