package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

type GameHandler struct {
	logger  *logrus.Logger
	session *session.Session
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *logrus.Logger,
	s *session.Session,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		session: s,
		ws:      ws,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, session.ErrUnknownCommand),
		errors.Is(err, session.ErrInvalidArgs),
		errors.Is(err, ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) do(w http.ResponseWriter, r *http.Request, cmd session.Command) {
	snap, err := g.session.Do(r.Context(), cmd)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			g.logger.WithError(err).Error("unable to apply command")
		}
		sendErrorOrLog(w, g.logger, status, err)
		return
	}
	sendJSONOrLog(w, g.logger, snap)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, session.Command{Kind: session.Get})
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	cmd, err := dto.Command()
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.do(w, r, cmd)
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	cmd, err := dto.Command()
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.do(w, r, cmd)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, session.Command{Kind: session.Reset})
}

// ConnectWS accepts newline separated text commands and answers each one
// with a snapshot, or an error object when the command is rejected.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			g.logger.Debug("\t> ", line)
			var reply any
			cmd, err := session.ParseCommand(line)
			if err == nil {
				cmd, err = checkCommand(cmd)
			}
			if err == nil {
				reply, err = g.session.Do(r.Context(), cmd)
			}
			if err != nil {
				if statusFor(err) >= http.StatusInternalServerError {
					g.logger.WithError(err).Error("command")
					return
				}
				reply = wrapError(err)
			}
			if err := c.WriteJSON(reply); err != nil {
				g.logger.WithError(err).Warn("write")
				return
			}
		}
	}
}
