package progress

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Persistence loads and saves the learner state.
type Persistence interface {
	// Load returns the stored state, writing defaults on first run.
	Load(ctx context.Context) (*Data, error)
	// Save writes all three records.
	Save(ctx context.Context, d *Data) error
	// Reset removes every stored record and returns fresh defaults.
	Reset(ctx context.Context) (*Data, error)
}

// ActivityKind names a recorded tracker mutation.
type ActivityKind string

const (
	ActivityConceptRead       ActivityKind = "concept_read"
	ActivityConceptUnread     ActivityKind = "concept_unread"
	ActivityExerciseCompleted ActivityKind = "exercise_completed"
	ActivityQuizCompleted     ActivityKind = "quiz_completed"
	ActivityModuleCompleted   ActivityKind = "module_completed"
	ActivityRenamed           ActivityKind = "renamed"
	ActivityImported          ActivityKind = "imported"
	ActivityReset             ActivityKind = "reset"
)

// Activity is one entry of the learner's history.
type Activity struct {
	SessionID string
	Kind      ActivityKind
	ModuleID  int
	Detail    string
	Timestamp time.Time
}

// ActivityLog appends and lists learner activity.
type ActivityLog interface {
	AppendActivity(ctx context.Context, a Activity) error
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)
}

// MemoryPersistence keeps records as JSON in memory. It mirrors the
// on-disk encoding so tests exercise the same round trip.
type MemoryPersistence struct {
	mu      sync.Mutex
	records map[string][]byte
	log     []Activity
	now     func() time.Time
}

// NewMemoryPersistence returns an empty in-memory store.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{
		records: make(map[string][]byte),
		now:     time.Now,
	}
}

// Load implements Persistence.
func (m *MemoryPersistence) Load(_ context.Context) (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, fresh := DecodeRecords(m.records, m.now())
	if fresh {
		if err := m.write(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Save implements Persistence.
func (m *MemoryPersistence) Save(_ context.Context, d *Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(d)
}

// Reset implements Persistence.
func (m *MemoryPersistence) Reset(_ context.Context) (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[string][]byte)
	m.log = nil
	d := NewData(m.now())
	if err := m.write(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Raw returns the stored bytes for a key.
func (m *MemoryPersistence) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[key]
	return b, ok
}

// SetRaw overwrites the stored bytes for a key.
func (m *MemoryPersistence) SetRaw(key string, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = b
}

// AppendActivity implements ActivityLog.
func (m *MemoryPersistence) AppendActivity(_ context.Context, a Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, a)
	return nil
}

// RecentActivity implements ActivityLog, newest first.
func (m *MemoryPersistence) RecentActivity(_ context.Context, limit int) ([]Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Activity
	for i := len(m.log) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.log[i])
	}
	return out, nil
}

func (m *MemoryPersistence) write(d *Data) error {
	recs, err := EncodeRecords(d)
	if err != nil {
		return err
	}
	for k, v := range recs {
		m.records[k] = v
	}
	return nil
}

// EncodeRecords serializes the state into its three keyed records.
func EncodeRecords(d *Data) (map[string][]byte, error) {
	user, err := json.Marshal(d.User)
	if err != nil {
		return nil, err
	}
	prog, err := json.Marshal(d.Progress)
	if err != nil {
		return nil, err
	}
	stats, err := json.Marshal(d.Stats)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		KeyUser:     user,
		KeyProgress: prog,
		KeyStats:    stats,
	}, nil
}

// DecodeRecords rebuilds the state from stored records. A missing user
// record means first run: every record is replaced by defaults and fresh
// is true. Missing or unparseable progress and stats records fall back to
// defaults individually. Absent modules are back-filled.
func DecodeRecords(records map[string][]byte, now time.Time) (d *Data, fresh bool) {
	d = NewData(now)

	rawUser, ok := records[KeyUser]
	if !ok || json.Unmarshal(rawUser, &d.User) != nil {
		return NewData(now), true
	}

	if raw, ok := records[KeyProgress]; ok {
		var p AppProgress
		if json.Unmarshal(raw, &p) == nil && p != nil {
			d.Progress = p
		}
	}
	d.Progress.Backfill()
	for k, mp := range d.Progress {
		if mp.ConceptsRead == nil {
			mp.ConceptsRead = []string{}
			d.Progress[k] = mp
		}
	}

	if raw, ok := records[KeyStats]; ok {
		var s Stats
		if json.Unmarshal(raw, &s) == nil {
			d.Stats = s
		}
	}
	return d, false
}
