package app

import (
	"github.com/vancomm/sweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.session, a.ws)

	a.router.HandleFunc("GET /game", game.Fetch)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("POST /game/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/reset", game.Reset)
	a.router.HandleFunc("/game/connect", game.ConnectWS)
}
