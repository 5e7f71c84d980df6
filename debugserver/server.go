package debugserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/battlecode-hq/botclient/client"
	"github.com/battlecode-hq/botclient/world"
)

// Server exposes a *client.Game's live mirror over HTTP.
type Server struct {
	game   *client.Game
	router *mux.Router
}

// NewServer builds a Server around game and wires its routes.
func NewServer(game *client.Game) *Server {
	s := &Server{game: game, router: mux.NewRouter()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	s.router.HandleFunc("/entities", s.handleEntities).Methods(http.MethodGet)
	s.router.HandleFunc("/sectors", s.handleSectors).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

type stateView struct {
	Turn     int64         `json:"turn"`
	MyTeamID world.TeamID  `json:"myTeamId"`
	Winner   *world.TeamID `json:"winner,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st := s.game.State()
	view := stateView{Turn: st.Turn(), MyTeamID: s.game.MyTeamID()}
	if winner, ok := s.game.Winner(); ok {
		view.Winner = &winner
	}
	respondJSON(w, http.StatusOK, view)
}

type entityView struct {
	ID       world.EntityID  `json:"id"`
	Type     world.EntityType `json:"type"`
	Team     world.TeamID    `json:"team"`
	Location string          `json:"location"`
	HP       int32           `json:"hp"`
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	handles := s.game.State().Entities(world.EntityFilter{})
	views := make([]entityView, 0, len(handles))
	for _, h := range handles {
		e := h.Entity()
		views = append(views, entityView{
			ID:       e.ID,
			Type:     e.Type,
			Team:     e.Team,
			Location: e.Location.String(),
			HP:       e.HP,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

type sectorView struct {
	TopLeft         string        `json:"topLeft"`
	ControllingTeam *world.TeamID `json:"controllingTeam,omitempty"`
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	sectors := s.game.State().Map().Sectors()
	views := make([]sectorView, 0, len(sectors))
	for _, sec := range sectors {
		views = append(views, sectorView{
			TopLeft:         sec.TopLeft.String(),
			ControllingTeam: sec.ControllingTeam,
		})
	}
	respondJSON(w, http.StatusOK, views)
}
