// Package session stores games on disk so they can be picked up again.
//
// A game is stored as its two players plus the full move log, one JSON file
// per game named after its ID. The board itself is never stored: loading a
// game replays the log, and the stored state hash is used to detect records
// that were edited by hand or written by a different rule set.
//
// Moves use the same externally tagged layout the peers exchange on the wire:
//
//	{"author": "alice", "move_type": {"CreateToken": {"distance": 4}}}
//	{"author": "bob", "move_type": {"MoveToken": {"x": 3, "y": 1, "distance": 2}}}
package session
