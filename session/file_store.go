package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qubist/hc-ur/game"
	"github.com/qubist/hc-ur/gamemaster"

	"github.com/google/uuid"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidGameID = errors.New("invalid game ID")
	ErrCorruptRecord = errors.New("game record does not match its moves")
)

// Record is the JSON layout of a stored game.
type Record struct {
	ID        string       `json:"id"`
	Player1   string       `json:"player_1"`
	Player2   string       `json:"player_2"`
	Opening   game.Opening `json:"opening"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Moves     []MoveRecord `json:"moves"`
	Hash      uint64       `json:"hash"`
}

func (r *Record) Game() game.Game {
	return game.Game{Player1: r.Player1, Player2: r.Player2}
}

// FileStore keeps one JSON file per game in a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create games directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Create stores a new game with no moves under a fresh ID. The opening is
// fixed for the life of the game.
func (fs *FileStore) Create(g game.Game, opening game.Opening) (*Record, error) {
	if g.Player1 == "" || g.Player2 == "" || g.Player1 == g.Player2 {
		return nil, fmt.Errorf("a game needs two different players, got %q and %q", g.Player1, g.Player2)
	}
	now := fs.now().UTC()
	rec := &Record{
		ID:        uuid.NewString(),
		Player1:   g.Player1,
		Player2:   g.Player2,
		Opening:   opening,
		CreatedAt: now,
		UpdatedAt: now,
		Moves:     []MoveRecord{},
		Hash:      uint64(game.Initial().Hash()),
	}
	if err := fs.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save writes rec, replacing any previous version.
func (fs *FileStore) Save(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}
	path, err := fs.path(rec.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	// write then rename, so readers never see half a file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write game file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace game file: %w", err)
	}
	return nil
}

// Load reads a game and checks that its moves still produce the stored hash.
func (fs *FileStore) Load(id string) (*Record, error) {
	rec, err := fs.read(id)
	if err != nil {
		return nil, err
	}

	moves, err := DecodeMoves(rec.Moves)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if got := uint64(game.Replay(rec.Game(), moves).Hash()); got != rec.Hash {
		return nil, fmt.Errorf("%w: hash %d, replay gives %d", ErrCorruptRecord, rec.Hash, got)
	}
	return rec, nil
}

// read decodes a record without replaying its moves.
func (fs *FileStore) read(id string) (*Record, error) {
	path, err := fs.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}
	return &rec, nil
}

// SaveState records the state reached after a move. It lets a FileStore back
// a gamemaster.Engine. The creation time and opening of an existing record are
// kept; its moves are not replayed.
func (fs *FileStore) SaveState(id string, g game.Game, state game.GameState) error {
	moves, err := EncodeMoves(state.Moves)
	if err != nil {
		return err
	}

	now := fs.now().UTC()
	rec := &Record{ID: id, CreatedAt: now}
	if existing, err := fs.read(id); err == nil {
		rec.CreatedAt = existing.CreatedAt
		rec.Opening = existing.Opening
	} else if !errors.Is(err, ErrGameNotFound) {
		return err
	}

	rec.Player1, rec.Player2 = g.Player1, g.Player2
	rec.UpdatedAt = now
	rec.Moves = moves
	rec.Hash = uint64(state.Hash())
	return fs.Save(rec)
}

// Open loads a game and hands it to an engine that stores every further move here.
// The engine plays standard rules with the game's stored opening, replacing any
// rules passed in options.
func (fs *FileStore) Open(id string, options ...gamemaster.Option) (*gamemaster.Engine, error) {
	rec, err := fs.Load(id)
	if err != nil {
		return nil, err
	}
	moves, err := DecodeMoves(rec.Moves)
	if err != nil {
		return nil, err
	}
	rules := game.NewStandardRules()
	rules.Opening = rec.Opening
	options = append(options, gamemaster.WithRules(rules), gamemaster.WithStore(fs))
	return gamemaster.Resume(rec.ID, rec.Game(), moves, options...)
}

func (fs *FileStore) Delete(id string) error {
	if !fs.Exists(id) {
		return ErrGameNotFound
	}
	path, err := fs.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove game file: %w", err)
	}
	return nil
}

// ListAll returns the IDs of every stored game.
func (fs *FileStore) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

func (fs *FileStore) Exists(id string) bool {
	path, err := fs.path(id)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (fs *FileStore) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidGameID, id)
	}
	return filepath.Join(fs.dir, id+".json"), nil
}
