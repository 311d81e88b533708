package engine

import (
	"connectline/communication/client"
	"connectline/game"
)

// RemoteEngine plays a game between two decision servers, PlayerA asking the
// server at urlA and PlayerB the one at urlB.
func RemoteEngine(rules game.Rules, first game.Side, urlA, urlB string) (Engine, error) {
	return LocalEngine(rules, first,
		client.NewRemoteAgent(client.New(urlA)),
		client.NewRemoteAgent(client.New(urlB)),
	)
}
