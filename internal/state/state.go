package state

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/db"
)

const (
	appName      = "culturedeck"
	dbFileName   = "culturedeck.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager is a JSON key-value store backed by SQLite.
// Reads fall back to the caller's default on any failure.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time

	// writeMu orders immediate writes against deferred flushes.
	writeMu sync.Mutex

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]string
}

// Open opens the store in the XDG data directory.
func Open(logger *zap.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve state path")
	}
	return OpenPath(dbPath, logger)
}

// OpenPath opens the store at path. Use db.Memory for a throwaway store.
func OpenPath(path string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Manager{
		db:      conn,
		logger:  logger,
		now:     time.Now,
		pending: make(map[string]string),
	}, nil
}

// Close flushes pending deferred writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	flushErr := m.flush()
	return errors.CombineErrors(flushErr, m.db.Close())
}

// Get decodes the value stored under key into dst.
// It reports false when the key is missing or unreadable.
func (m *Manager) Get(key string, dst any) bool {
	raw, ok := m.raw(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		m.logger.Warn("state value unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (m *Manager) raw(key string) (string, bool) {
	m.saveMu.Lock()
	raw, ok := m.pending[key]
	m.saveMu.Unlock()
	if ok {
		return raw, true
	}

	raw, _, ok, err := getValue(m.db, key)
	if err != nil {
		m.logger.Warn("state read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}

// UpdatedAt returns when key was last written to disk.
func (m *Manager) UpdatedAt(key string) (time.Time, bool) {
	_, updatedAt, ok, err := getValue(m.db, key)
	if err != nil || !ok || updatedAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(updatedAt, 0), true
}

// Set writes value under key immediately, superseding any deferred write.
func (m *Manager) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn("state value not encodable", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "encode %q", key)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	delete(m.pending, key)
	m.saveMu.Unlock()

	if err := putValue(m.db, key, string(data), m.now().Unix()); err != nil {
		m.logger.Warn("state write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// SetDeferred records value under key and schedules a flush. Writes made
// within the debounce window are coalesced into one transaction.
func (m *Manager) SetDeferred(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Warn("state value not encodable", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "encode %q", key)
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[key] = string(data)

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := m.flush(); err != nil {
			m.logger.Warn("deferred state flush failed", zap.Error(err))
		}
	})
	return nil
}

// Flush writes pending deferred values now.
func (m *Manager) Flush() error {
	return m.flush()
}

func (m *Manager) flush() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string]string)
	m.saveMu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	now := m.now().Unix()
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		for key, value := range pending {
			if err := putValue(tx, key, value, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
