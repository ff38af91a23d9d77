package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

// Writer exports metrics as CSV files in one directory.
type Writer struct {
	baseDir string
}

func NewWriter(baseDir string) (*Writer, error) {
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameMetric) error {
	header := []string{"id", "player_1", "player_2", "start_time", "end_time", "total_moves",
		"p1_moves", "p2_moves", "p1_home", "p2_home", "rosettes"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.Player1,
			record.Player2,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.P1Moves),
			strconv.Itoa(record.P2Moves),
			strconv.Itoa(record.P1Home),
			strconv.Itoa(record.P2Home),
			strconv.Itoa(record.Rosettes),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "author", "seat", "kind", "distance", "landing_x", "landing_y", "homed", "rosette"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Author,
			record.Seat.String(),
			record.Kind,
			strconv.Itoa(record.Distance),
			strconv.Itoa(record.Landing.X),
			strconv.Itoa(record.Landing.Y),
			strconv.FormatBool(record.Homed),
			strconv.FormatBool(record.Rosette),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
