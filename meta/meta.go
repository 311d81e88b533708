// meta/meta.go
package meta

// COLUMNS defines the default board width (and height, the board is square).
const COLUMNS = 8

// LINE defines the default number of aligned pieces needed to win.
const LINE = 4

// PLAYOUTS defines the default number of MCTS iterations per decision.
const PLAYOUTS = 35000

// THRESHOLD_RATIO scales PLAYOUTS into the default expansion threshold.
const THRESHOLD_RATIO = 0.004

// RANDOM_DRAWS bounds the random column draws of a playout before it falls
// back to any open column.
const RANDOM_DRAWS = 50

// SERVER_ADDRESS defines the default listen address of the decision server.
const SERVER_ADDRESS = ":8080"

// GAMES defines the default number of games per experiment match-up.
const GAMES = 10

// MAX_TURNS bounds a local engine game. A square board cannot outlast it.
const MAX_TURNS = 32 * 32
