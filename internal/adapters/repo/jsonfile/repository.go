// Package jsonfile persists the session history as a JSON array on disk.
// Writes go through a temp file and rename so a crash mid-write can never
// leave a half-written history behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/modelwatch/internal/domain"
	"github.com/bnema/modelwatch/internal/ports"
)

const (
	historyFileMode = 0o644
	historyDirMode  = 0o755
	tempFilePattern = ".history-*.json.tmp"
)

type Repository struct {
	historyPath string
	retention   time.Duration
	clock       ports.Clock
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(historyPath string, retention time.Duration, clock ports.Clock) (*Repository, error) {
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	absPath, err := filepath.Abs(historyPath)
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{
		historyPath: absPath,
		retention:   retention,
		clock:       clock,
		mu:          lockForPath(absPath),
	}, nil
}

// Load reads the stored session list. A missing file yields an empty list;
// an unparsable file yields ErrCorruptHistory. Retention pruning is applied
// before returning, so expired closed sessions never reach the caller.
func (r *Repository) Load(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions, err := r.readHistory()
	if err != nil {
		return nil, err
	}

	return domain.Prune(sessions, r.clock.Now(), r.retention), nil
}

func (r *Repository) Save(ctx context.Context, sessions []domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]sessionSchema, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, toSchema(session))
	}

	return r.writeHistory(entries)
}

func (r *Repository) readHistory() ([]domain.Session, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var entries []sessionSchema
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode history file: %v", domain.ErrCorruptHistory, err)
	}

	if isLegacyFormat(data) {
		return nil, nil
	}

	sessions := make([]domain.Session, 0, len(entries))
	for _, entry := range entries {
		session, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: decode session timestamps: %v", domain.ErrCorruptHistory, err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// isLegacyFormat detects the retired snapshot-per-poll file shape, a JSON
// array of objects carrying "timestamp" and "models" keys.
func isLegacyFormat(data []byte) bool {
	var legacy []legacyEntrySchema
	if err := json.Unmarshal(data, &legacy); err != nil {
		return false
	}

	return len(legacy) > 0 && legacy[0].Timestamp != nil && legacy[0].Models != nil
}

func (r *Repository) writeHistory(entries []sessionSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
