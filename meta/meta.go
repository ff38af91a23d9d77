// meta/meta.go
package meta

// TOKENS_PER_PLAYER is how many tokens each player brings to the game (on board + home).
const TOKENS_PER_PLAYER = 7

// MAX_DISTANCE is the largest single move, the best possible dice throw.
const MAX_DISTANCE = 4

// MIN_DISTANCE is the smallest move that can be submitted.
const MIN_DISTANCE = 1

// DICE is the number of binary dice thrown per turn.
const DICE = 4

// DATA_DIR is the default directory game records are stored in.
const DATA_DIR = "games"
