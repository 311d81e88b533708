package searcher

import "connectline/meta"

// Hyperparameters for MCTS

const C = 1.0 // Exploration constant

// Playout outcomes from the searching side's perspective
const WIN = 1.0
const LOSS = 1 - WIN
const DRAW = 0.5

// Random column draws per playout move before any open column is accepted
const RandomDraws = meta.RANDOM_DRAWS
