package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	NewGame(ctx context.Context, mode string, difficulty entity.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	Scores(ctx context.Context) (entity.ScoreTally, error)
	ClearScores(ctx context.Context) (entity.ScoreTally, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Router - all HTTP routes of the game.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)

	router.Post("/games", that.handleNewGame)
	router.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", that.handleGetGame)
		r.Delete("/", that.handleDeleteGame)
		r.Post("/turn", that.handleTurn)
		r.Post("/reset", that.handleReset)
		r.Put("/difficulty", that.handleDifficulty)
	})

	router.Get("/scores", that.handleScores)
	router.Delete("/scores", that.handleClearScores)

	return router
}

// Start - serves the router until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
