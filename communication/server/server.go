package server

import (
	"connectline/agent"
	"connectline/communication"
	"connectline/game"
	"connectline/searcher"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server answers decision requests over HTTP and websockets. Every request
// runs its own search; nothing is shared between requests.
type Server struct {
	rules  game.Rules
	router chi.Router
}

// New returns a server that plays by rules unless a request brings its own.
// Requests never get more playouts than rules allow.
func New(rules game.Rules) *Server {
	s := &Server{rules: rules}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/decide", s.handleDecide)
	r.Get("/ws/decide", s.serveWS)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("decision server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// prepare resolves the rules of a request and rebuilds its position.
func (s *Server) prepare(req communication.DecideRequest) (*game.Position, *searcher.MCTS, error) {
	if req.Rules == (game.Rules{}) {
		req.Rules = s.rules
	}
	req.Rules.Playouts = min(req.Rules.Playouts, s.rules.Playouts)
	pos, err := req.Position()
	if err != nil {
		return nil, nil, err
	}
	if pos.IsFull() {
		return nil, nil, agent.ErrNoMoves
	}
	return pos, searcher.NewMCTS(searcher.FromRules(req.Rules)), nil
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req communication.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.Error{Error: "invalid payload"})
		return
	}
	pos, mcts, err := s.prepare(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, communication.Error{Error: err.Error()})
		return
	}

	id := uuid.NewString()
	log.Info().Msgf("decision %s requested for side %s", id, req.Side)
	d, err := agent.NewEvaluationAgent(mcts).Decide(pos, req.Side)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, communication.Error{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response(id, d))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	send := make(chan communication.Message, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				for range send { // Drain so the reader never blocks
				}
				return
			}
		}
	}()
	defer func() {
		close(send)
		<-done
	}()

	for {
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}
		switch msg.Type {
		case communication.TypeDecide:
			s.stream(msg, send)
		default:
			sendError(send, errors.New("unknown message type: "+msg.Type))
		}
	}
}

// stream runs one decision and sends its progress and result.
func (s *Server) stream(msg communication.Message, send chan<- communication.Message) {
	var req communication.DecideRequest
	if err := msg.Decode(&req); err != nil {
		sendError(send, err)
		return
	}
	pos, mcts, err := s.prepare(req)
	if err != nil {
		sendError(send, err)
		return
	}
	updates, err := agent.DecideAsync(mcts, pos, req.Side)
	if err != nil {
		sendError(send, err)
		return
	}

	id := uuid.NewString()
	log.Info().Msgf("streamed decision %s requested for side %s", id, req.Side)
	for u := range updates {
		if u.Decision != nil {
			send <- mustMessage(communication.TypeResult, response(id, *u.Decision))
			continue
		}
		send <- mustMessage(communication.TypeProgress, communication.Progress{
			ID:        id,
			Iteration: u.Progress.Iteration,
			Total:     u.Progress.Total,
		})
	}
}

func response(id string, d agent.Decision) communication.DecideResponse {
	return communication.DecideResponse{
		ID:     id,
		Column: d.Column,
		Tactic: string(d.Tactic),
		Policy: d.Policy,
	}
}

func sendError(send chan<- communication.Message, err error) {
	send <- mustMessage(communication.TypeError, communication.Error{Error: err.Error()})
}

func mustMessage(typ string, payload any) communication.Message {
	msg, err := communication.NewMessage(typ, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
