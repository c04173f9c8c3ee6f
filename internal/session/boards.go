// internal/session/boards.go
package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gigboard/internal/common/errors"
	"gigboard/internal/creator"
	"gigboard/internal/models"
	"gigboard/internal/store"
)

// Board is a creator flow restored for one job, with a recorder capturing
// the notifications and navigation it emits.
type Board struct {
	ID     string
	Flow   *creator.Flow
	Events *creator.Recorder

	processed []ProcessedJob
}

// maxProcessedJobs bounds the replay log kept with each board.
const maxProcessedJobs = 64

// ProcessedJob is the output a Zeebe job completed with, kept so a
// redelivered job completes the same way without touching the flow again.
type ProcessedJob struct {
	JobKey int64           `json:"jobKey"`
	Output json.RawMessage `json:"output"`
}

type boardSnapshot struct {
	Flow      creator.State  `json:"flow"`
	Processed []ProcessedJob `json:"processed,omitempty"`
}

// Boards loads and saves creator flow snapshots.
type Boards struct {
	store store.Store
	now   func() time.Time
}

func NewBoards(s store.Store) *Boards {
	return &Boards{store: s, now: time.Now}
}

// WithClock sets the clock handed to every opened flow.
func (b *Boards) WithClock(now func() time.Time) *Boards {
	b.now = now
	return b
}

// Open restores the board's flow. A board that was never saved starts empty.
func (b *Boards) Open(ctx context.Context, boardID string) (*Board, error) {
	rec := &creator.Recorder{}
	flow := creator.NewFlow(rec, rec).WithClock(b.now)

	key := store.BoardKey(boardID)
	var snap boardSnapshot
	err := b.store.Load(ctx, key, &snap)
	switch {
	case err == nil:
		flow.Restore(snap.Flow)
	case stderrors.Is(err, store.ErrNotFound):
	default:
		return nil, errors.NewFlowStateUnavailableError(key, err)
	}

	return &Board{ID: boardID, Flow: flow, Events: rec, processed: snap.Processed}, nil
}

func (b *Boards) Save(ctx context.Context, board *Board) error {
	key := store.BoardKey(board.ID)
	snap := boardSnapshot{Flow: board.Flow.State(), Processed: board.processed}
	if err := b.store.Save(ctx, key, snap); err != nil {
		return errors.NewFlowStateUnavailableError(key, err)
	}
	return nil
}

// Notifications returns what the flow emitted, never nil.
func (b *Board) Notifications() []models.Notification {
	return append([]models.Notification{}, b.Events.Notifications...)
}

// Navigation returns the last navigation intent, or "".
func (b *Board) Navigation() models.View {
	return b.Events.LastView()
}

// Replay decodes the output recorded for jobKey into out and reports whether
// one was found. A zero key is never recorded.
func (b *Board) Replay(jobKey int64, out interface{}) (bool, error) {
	if jobKey == 0 {
		return false, nil
	}
	for _, p := range b.processed {
		if p.JobKey == jobKey {
			if err := json.Unmarshal(p.Output, out); err != nil {
				return false, fmt.Errorf("decode output of job %d: %w", jobKey, err)
			}
			return true, nil
		}
	}
	return false, nil
}

// Record keeps out as the result of jobKey. It is persisted by the next Save.
func (b *Board) Record(jobKey int64, out interface{}) error {
	if jobKey == 0 {
		return nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode output of job %d: %w", jobKey, err)
	}
	b.processed = append(b.processed, ProcessedJob{JobKey: jobKey, Output: raw})
	if n := len(b.processed); n > maxProcessedJobs {
		b.processed = append([]ProcessedJob(nil), b.processed[n-maxProcessedJobs:]...)
	}
	return nil
}
