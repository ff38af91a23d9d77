// Command ur keeps Royal Game of Ur matches on disk and referees the moves
// players submit to them.
//
// Games are stored as JSON move logs in --data-dir (or UR_DATA_DIR). Every
// move is checked against the latest stored state before it is recorded, and
// a rejected move prints the reason a player would see.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/qubist/hc-ur/dice"
	"github.com/qubist/hc-ur/game"
	"github.com/qubist/hc-ur/gamemaster"
	"github.com/qubist/hc-ur/meta"
	"github.com/qubist/hc-ur/metrics"
	"github.com/qubist/hc-ur/session"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"
)

const AppName = "ur"

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  AppName,
		Usage: "referee Royal Game of Ur matches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "directory game records are kept in",
				Value:   meta.DATA_DIR,
				Sources: cli.EnvVars("UR_DATA_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("UR_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "new",
				Usage: "start a game between two players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "p1", Usage: "player 1 identity", Required: true},
					&cli.StringFlag{Name: "p2", Usage: "player 2 identity", Required: true},
					&cli.BoolFlag{Name: "player2-starts", Usage: "require player 2 to make the first move"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					opening := game.OpenStart
					if cmd.Bool("player2-starts") {
						opening = game.SecondPlayerStarts
					}
					rec, err := store.Create(game.Game{Player1: cmd.String("p1"), Player2: cmd.String("p2")}, opening)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, rec.ID)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list stored games",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					ids, err := store.ListAll()
					if err != nil {
						return err
					}
					for _, id := range ids {
						rec, err := store.Load(id)
						if err != nil {
							log.Warn().Str("game", id).Err(err).Msg("skipping unreadable game")
							continue
						}
						fmt.Fprintf(out, "%s %s vs %s, %d moves\n", rec.ID, rec.Player1, rec.Player2, len(rec.Moves))
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "draw the board and say whose turn it is",
				ArgsUsage: "<game-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					engine, err := openGame(cmd)
					if err != nil {
						return err
					}
					printBoard(out, engine)
					return nil
				},
			},
			{
				Name:      "move",
				Usage:     "submit a move",
				ArgsUsage: "<game-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "author", Usage: "player making the move", Required: true},
					&cli.IntFlag{Name: "distance", Usage: "cells to move (the dice throw)", Required: true},
					&cli.StringFlag{Name: "from", Usage: "x,y of the token to move; omit to enter a new token"},
					&cli.IntFlag{Name: "seen", Usage: "number of moves in the log when the move was chosen", Value: -1},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					engine, err := openGame(cmd)
					if err != nil {
						return err
					}
					move, err := parseMove(cmd.String("author"), cast.ToInt(cmd.Value("distance")), cmd.String("from"))
					if err != nil {
						return err
					}

					if seen := cast.ToInt(cmd.Value("seen")); seen >= 0 {
						_, err = engine.PlayExpecting(seen, move)
					} else {
						_, err = engine.Play(move)
					}
					if err != nil {
						return err
					}
					printBoard(out, engine)
					return nil
				},
			},
			{
				Name:      "moves",
				Usage:     "list the legal moves for a throw, throwing the dice if none is given",
				ArgsUsage: "<game-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "author", Usage: "player to list moves for", Required: true},
					&cli.IntFlag{Name: "distance", Usage: "the dice throw"},
					&cli.IntFlag{Name: "seed", Usage: "dice seed (defaults to the clock)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					engine, err := openGame(cmd)
					if err != nil {
						return err
					}
					distance := cast.ToInt(cmd.Value("distance"))
					if !cmd.IsSet("distance") {
						distance = newRoller(cmd).Roll()
						fmt.Fprintf(out, "threw %d\n", distance)
					}
					moves := engine.LegalMoves(cmd.String("author"), distance)
					if len(moves) == 0 {
						fmt.Fprintln(out, "no legal moves")
						return nil
					}
					for _, m := range moves {
						fmt.Fprintln(out, m.Kind)
					}
					return nil
				},
			},
			{
				Name:      "replay",
				Usage:     "print the move log, drawing the board after every move with --boards",
				ArgsUsage: "<game-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "boards", Usage: "draw the board after every move"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					engine, err := openGame(cmd)
					if err != nil {
						return err
					}
					g, rules := engine.Game(), engine.Rules()
					state := game.Initial()
					for i, m := range engine.State().Moves {
						state = state.Evolve(g, m)
						fmt.Fprintf(out, "%3d %s %v\n", i+1, m.Author, m.Kind)
						if cmd.Bool("boards") {
							fmt.Fprint(out, state.Render(g, rules))
						}
					}
					return nil
				},
			},
			{
				Name:      "stats",
				Usage:     "summarise a game's moves",
				ArgsUsage: "<game-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					collector := metrics.NewCollector()
					engine, err := openGame(cmd, gamemaster.WithCollector(collector))
					if err != nil {
						return err
					}
					g := engine.Game()
					gm := metrics.Summarize(engine.ID(), g, collector.Moves())
					fmt.Fprintf(out, "moves: %d (%s %d, %s %d)\n", gm.TotalMoves, g.Player1, gm.P1Moves, g.Player2, gm.P2Moves)
					fmt.Fprintf(out, "home: %s %d, %s %d\n", g.Player1, gm.P1Home, g.Player2, gm.P2Home)
					fmt.Fprintf(out, "rosettes: %d\n", gm.Rosettes)
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "write game and move records as CSV, for every game unless IDs are given",
				ArgsUsage: "[game-id...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "directory to write the CSV files to", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					ids := cmd.Args().Slice()
					if len(ids) == 0 {
						if ids, err = store.ListAll(); err != nil {
							return err
						}
					}
					writer, err := metrics.NewWriter(cmd.String("out"))
					if err != nil {
						return err
					}

					var games []metrics.GameMetric
					var moves []metrics.MoveRecord
					for _, id := range ids {
						rec, err := store.Load(id)
						if err != nil {
							return fmt.Errorf("game %s: %w", id, err)
						}
						played, err := session.DecodeMoves(rec.Moves)
						if err != nil {
							return fmt.Errorf("game %s: %w", id, err)
						}
						mm := metrics.FromLog(rec.Game(), played)
						gm := metrics.Summarize(rec.ID, rec.Game(), mm)
						gm.StartTime, gm.EndTime = rec.CreatedAt, rec.UpdatedAt
						games = append(games, gm)
						for _, m := range mm {
							moves = append(moves, metrics.MoveRecord{Game: rec.ID, MoveMetric: m})
						}
					}
					if err := writer.WriteGameRecords(games); err != nil {
						return err
					}
					if err := writer.WriteMoveRecords(moves); err != nil {
						return err
					}
					fmt.Fprintf(out, "exported %d games to %s\n", len(games), writer.Dir())
					return nil
				},
			},
			{
				Name:  "roll",
				Usage: "throw the dice",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seed", Usage: "dice seed (defaults to the clock)"},
					&cli.IntFlag{Name: "count", Usage: "number of throws", Value: 1},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					roller := newRoller(cmd)
					for i := 0; i < cast.ToInt(cmd.Value("count")); i++ {
						fmt.Fprintln(out, roller.Roll())
					}
					return nil
				},
			},
		},
	}
}

func setupLogger(cmd *cli.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if cmd.Bool("debug") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return log.Logger
}

func openStore(cmd *cli.Command) (*session.FileStore, error) {
	setupLogger(cmd)
	return session.NewFileStore(cmd.String("data-dir"))
}

func openGame(cmd *cli.Command, options ...gamemaster.Option) (*gamemaster.Engine, error) {
	id := cmd.Args().First()
	if id == "" {
		return nil, fmt.Errorf("missing game ID")
	}
	store, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	options = append(options, gamemaster.WithLogger(log.Logger))
	return store.Open(id, options...)
}

func newRoller(cmd *cli.Command) *dice.Roller {
	if cmd.IsSet("seed") {
		return dice.NewRoller(cast.ToUint64(cmd.Value("seed")))
	}
	return dice.NewRoller(uint64(time.Now().UnixNano()))
}

// parseMove builds a CreateToken when from is empty, otherwise a MoveToken
// from the "x,y" cell in from.
func parseMove(author string, distance int, from string) (game.Move, error) {
	if from == "" {
		return game.Move{Author: author, Kind: game.CreateToken{Distance: distance}}, nil
	}
	parts := strings.Split(from, ",")
	if len(parts) != 2 {
		return game.Move{}, fmt.Errorf("--from must look like x,y, got %q", from)
	}
	x, err := cast.ToIntE(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.Move{}, fmt.Errorf("bad x in --from: %w", err)
	}
	y, err := cast.ToIntE(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.Move{}, fmt.Errorf("bad y in --from: %w", err)
	}
	return game.Move{Author: author, Kind: game.MoveToken{X: x, Y: y, Distance: distance}}, nil
}

func printBoard(out io.Writer, engine *gamemaster.Engine) {
	state := engine.State()
	fmt.Fprint(out, state.Render(engine.Game(), engine.Rules()))

	turn := engine.Turn()
	switch {
	case turn.Either:
		fmt.Fprintln(out, "either player may move")
	case turn.Rosette:
		fmt.Fprintf(out, "%s to move again (rosette)\n", turn.Player)
	default:
		fmt.Fprintf(out, "%s to move\n", turn.Player)
	}
}
