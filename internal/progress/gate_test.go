package progress

import (
	"testing"
	"time"
)

func completedThrough(n int) AppProgress {
	p := NewData(time.Unix(0, 0)).Progress
	for id := 1; id <= n; id++ {
		mp := p.Module(id)
		mp.Completed = true
		p[ModuleKey(id)] = mp
	}
	return p
}

func TestIsLocked(t *testing.T) {
	tests := []struct {
		name     string
		progress AppProgress
		module   int
		want     bool
	}{
		{"module 1 on empty progress", AppProgress{}, 1, false},
		{"module 1 on fresh progress", completedThrough(0), 1, false},
		{"module 2 locked when 1 incomplete", completedThrough(0), 2, true},
		{"module 2 open when 1 complete", completedThrough(1), 2, false},
		{"module 5 locked when only 1-3 complete", completedThrough(3), 5, true},
		{"module 4 open when 1-3 complete", completedThrough(3), 4, false},
		{"module 10 open when 1-9 complete", completedThrough(9), 10, false},
		{"absent previous module counts as incomplete", AppProgress{}, 3, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLocked(tc.module, tc.progress); got != tc.want {
				t.Errorf("IsLocked(%d) = %v, want %v", tc.module, got, tc.want)
			}
		})
	}
}

func TestIsLocked_OnlyPreviousModuleMatters(t *testing.T) {
	p := completedThrough(0)
	mp := p.Module(4)
	mp.Completed = true
	p[ModuleKey(4)] = mp

	if IsLocked(5, p) {
		t.Error("module 5 should be open when module 4 is complete")
	}
	if !IsLocked(4, p) {
		t.Error("module 4 should still be locked when module 3 is incomplete")
	}
}

func TestNextUnlocked(t *testing.T) {
	if got := NextUnlocked(completedThrough(0)); got != 1 {
		t.Errorf("fresh progress: got %d, want 1", got)
	}
	if got := NextUnlocked(completedThrough(4)); got != 5 {
		t.Errorf("1-4 complete: got %d, want 5", got)
	}
	if got := NextUnlocked(completedThrough(10)); got != 0 {
		t.Errorf("all complete: got %d, want 0", got)
	}
}

func TestOverallPercentAndAllComplete(t *testing.T) {
	if got := OverallPercent(completedThrough(3)); got != 30 {
		t.Errorf("OverallPercent = %d, want 30", got)
	}
	if AllComplete(completedThrough(9)) {
		t.Error("9 of 10 should not be all complete")
	}
	if !AllComplete(completedThrough(10)) {
		t.Error("10 of 10 should be all complete")
	}
}

func TestAverageQuizScore(t *testing.T) {
	p := completedThrough(0)
	if avg, n := AverageQuizScore(p); avg != 0 || n != 0 {
		t.Errorf("no attempts: got (%v, %d)", avg, n)
	}

	for id, score := range map[int]int{1: 80, 2: 65} {
		s := score
		mp := p.Module(id)
		mp.QuizScore = &s
		p[ModuleKey(id)] = mp
	}
	avg, n := AverageQuizScore(p)
	if n != 2 || avg != 72.5 {
		t.Errorf("got (%v, %d), want (72.5, 2)", avg, n)
	}
}
