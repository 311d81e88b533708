package client

import (
	"bytes"
	"connectline/agent"
	"connectline/communication"
	"connectline/game"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

var ErrServer = errors.New("decision server error")

// Client talks to a decision server.
type Client struct {
	serverURL string
	http      *http.Client
	dialer    websocket.Dialer
}

// New returns a client for the server at serverURL, e.g. http://localhost:8080.
func New(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{},
		dialer:    websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to ping server: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping returned status %d", ErrServer, resp.StatusCode)
	}
	return nil
}

// Decide asks for a decision and waits for it.
func (c *Client) Decide(ctx context.Context, request communication.DecideRequest) (communication.DecideResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return communication.DecideResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/decide", bytes.NewReader(body))
	if err != nil {
		return communication.DecideResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return communication.DecideResponse{}, fmt.Errorf("failed to request decision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.Error
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return communication.DecideResponse{}, fmt.Errorf("%w: status %d: %s", ErrServer, resp.StatusCode, e.Error)
	}
	var decision communication.DecideResponse
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return communication.DecideResponse{}, fmt.Errorf("failed to decode decision: %w", err)
	}
	return decision, nil
}

// Stream asks for a decision over a websocket, calling progress for every
// reported iteration until the result arrives.
func (c *Client) Stream(ctx context.Context, request communication.DecideRequest, progress func(communication.Progress)) (communication.DecideResponse, error) {
	wsURL, err := websocketURL(c.serverURL)
	if err != nil {
		return communication.DecideResponse{}, err
	}
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return communication.DecideResponse{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	msg, err := communication.NewMessage(communication.TypeDecide, request)
	if err != nil {
		return communication.DecideResponse{}, err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return communication.DecideResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	for {
		if deadline, ok := ctx.Deadline(); ok {
			conn.SetReadDeadline(deadline)
		}
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return communication.DecideResponse{}, fmt.Errorf("read error: %w", err)
		}

		switch msg.Type {
		case communication.TypeProgress:
			var p communication.Progress
			if err := msg.Decode(&p); err != nil {
				return communication.DecideResponse{}, err
			}
			if progress != nil {
				progress(p)
			}
		case communication.TypeResult:
			var decision communication.DecideResponse
			err := msg.Decode(&decision)
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return decision, err
		case communication.TypeError:
			var e communication.Error
			if err := msg.Decode(&e); err != nil {
				return communication.DecideResponse{}, err
			}
			return communication.DecideResponse{}, fmt.Errorf("%w: %s", ErrServer, e.Error)
		}
	}
}

func websocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", serverURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws/decide"
	return u.String(), nil
}

type remoteAgent struct {
	client *Client
}

// NewRemoteAgent returns an agent whose decisions are made by a server.
func NewRemoteAgent(client *Client) agent.Agent {
	return remoteAgent{client: client}
}

func (a remoteAgent) Decide(pos *game.Position, side game.Side) (agent.Decision, error) {
	resp, err := a.client.Decide(context.Background(), communication.NewRequest(pos, side))
	if err != nil {
		return agent.Decision{}, err
	}
	return agent.Decision{
		Column: resp.Column,
		Tactic: agent.Tactic(resp.Tactic),
		Policy: resp.Policy,
	}, nil
}
