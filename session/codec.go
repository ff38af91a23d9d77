package session

import (
	"errors"
	"fmt"

	"github.com/qubist/hc-ur/game"
)

var ErrUnknownMoveType = errors.New("unknown move type")

type MoveRecord struct {
	Author   string         `json:"author"`
	MoveType MoveTypeRecord `json:"move_type"`
}

// MoveTypeRecord holds exactly one of its fields.
type MoveTypeRecord struct {
	CreateToken *CreateTokenRecord `json:"CreateToken,omitempty"`
	MoveToken   *MoveTokenRecord   `json:"MoveToken,omitempty"`
}

type CreateTokenRecord struct {
	Distance int `json:"distance"`
}

type MoveTokenRecord struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	Distance int `json:"distance"`
}

func EncodeMove(m game.Move) (MoveRecord, error) {
	rec := MoveRecord{Author: m.Author}
	switch k := m.Kind.(type) {
	case game.CreateToken:
		rec.MoveType.CreateToken = &CreateTokenRecord{Distance: k.Distance}
	case game.MoveToken:
		rec.MoveType.MoveToken = &MoveTokenRecord{X: k.X, Y: k.Y, Distance: k.Distance}
	default:
		return MoveRecord{}, fmt.Errorf("%w: %T", ErrUnknownMoveType, m.Kind)
	}
	return rec, nil
}

func DecodeMove(rec MoveRecord) (game.Move, error) {
	t := rec.MoveType
	switch {
	case t.CreateToken != nil && t.MoveToken == nil:
		return game.Move{Author: rec.Author, Kind: game.CreateToken{Distance: t.CreateToken.Distance}}, nil
	case t.MoveToken != nil && t.CreateToken == nil:
		return game.Move{Author: rec.Author, Kind: game.MoveToken{
			X:        t.MoveToken.X,
			Y:        t.MoveToken.Y,
			Distance: t.MoveToken.Distance,
		}}, nil
	default:
		return game.Move{}, ErrUnknownMoveType
	}
}

func EncodeMoves(moves []game.Move) ([]MoveRecord, error) {
	out := make([]MoveRecord, 0, len(moves))
	for i, m := range moves {
		rec, err := EncodeMove(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func DecodeMoves(recs []MoveRecord) ([]game.Move, error) {
	out := make([]game.Move, 0, len(recs))
	for i, rec := range recs {
		m, err := DecodeMove(rec)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}
