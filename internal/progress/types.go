package progress

import (
	"slices"
	"strconv"
	"time"
)

// ModuleCount is the number of modules in the course.
const ModuleCount = 10

// DefaultUserName is used until the learner renames themselves.
const DefaultUserName = "Guest"

// Record keys of the persisted layout.
const (
	KeyUser     = "financeFluency_user"
	KeyProgress = "financeFluency_progress"
	KeyStats    = "financeFluency_stats"
)

// User identifies the learner.
type User struct {
	Name      string `json:"name"`
	StartedAt int64  `json:"startedAt"`
}

// ModuleProgress is the learner's state in one module.
type ModuleProgress struct {
	ConceptsRead      []string `json:"conceptsRead"`
	ExerciseCompleted bool     `json:"exerciseCompleted"`
	QuizScore         *int     `json:"quizScore"`
	Completed         bool     `json:"completed"`
}

// HasRead reports whether the concept has been marked read.
func (m ModuleProgress) HasRead(conceptID string) bool {
	return slices.Contains(m.ConceptsRead, conceptID)
}

// Clone returns a deep copy.
func (m ModuleProgress) Clone() ModuleProgress {
	out := m
	out.ConceptsRead = slices.Clone(m.ConceptsRead)
	if out.ConceptsRead == nil {
		out.ConceptsRead = []string{}
	}
	if m.QuizScore != nil {
		s := *m.QuizScore
		out.QuizScore = &s
	}
	return out
}

// AppProgress maps module keys "1".."10" to module progress.
type AppProgress map[string]ModuleProgress

// ModuleKey returns the progress map key for a module id.
func ModuleKey(id int) string {
	return strconv.Itoa(id)
}

// Module returns the progress for a module, or the zero state if absent.
func (p AppProgress) Module(id int) ModuleProgress {
	if mp, ok := p[ModuleKey(id)]; ok {
		return mp
	}
	return EmptyModule()
}

// Clone returns a deep copy.
func (p AppProgress) Clone() AppProgress {
	out := make(AppProgress, len(p))
	for k, v := range p {
		out[k] = v.Clone()
	}
	return out
}

// Backfill adds an empty entry for every module that is missing.
func (p AppProgress) Backfill() {
	for id := 1; id <= ModuleCount; id++ {
		key := ModuleKey(id)
		if _, ok := p[key]; !ok {
			p[key] = EmptyModule()
		}
	}
}

// CompletedCount returns how many modules are complete.
func (p AppProgress) CompletedCount() int {
	n := 0
	for id := 1; id <= ModuleCount; id++ {
		if p.Module(id).Completed {
			n++
		}
	}
	return n
}

// EmptyModule returns the initial state of a module.
func EmptyModule() ModuleProgress {
	return ModuleProgress{ConceptsRead: []string{}}
}

// Stats tracks time spent in the app.
type Stats struct {
	TotalTimeSpent int64 `json:"totalTimeSpent"`
	LastAccessed   int64 `json:"lastAccessed"`
}

// Data is the full persisted learner state.
type Data struct {
	User     User
	Progress AppProgress
	Stats    Stats
}

// NewData returns the defaults written on first run.
func NewData(now time.Time) *Data {
	p := make(AppProgress, ModuleCount)
	p.Backfill()
	return &Data{
		User:     DefaultUser(now),
		Progress: p,
		Stats:    DefaultStats(now),
	}
}

// DefaultUser returns a fresh user record.
func DefaultUser(now time.Time) User {
	return User{Name: DefaultUserName, StartedAt: now.UnixMilli()}
}

// DefaultStats returns a fresh stats record.
func DefaultStats(now time.Time) Stats {
	return Stats{LastAccessed: now.UnixMilli()}
}

// Clone returns a deep copy.
func (d *Data) Clone() *Data {
	return &Data{
		User:     d.User,
		Progress: d.Progress.Clone(),
		Stats:    d.Stats,
	}
}
