package certificate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/progress"
)

func TestLines(t *testing.T) {
	lines := Lines("Ada Lovelace", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if lines[4] != "Ada Lovelace" {
		t.Errorf("name line = %q", lines[4])
	}
	if got := lines[len(lines)-1]; got != "March 14, 2025" {
		t.Errorf("date line = %q", got)
	}
}

func TestViewDependsOnCompletion(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	tr, err := progress.NewTracker(context.Background(), progress.NewMemoryPersistence(), c)
	if err != nil {
		t.Fatal(err)
	}
	s := New(tr)
	s.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	if v := s.View(100, 30); !strings.Contains(v, "0 of 10 done") {
		t.Errorf("incomplete view = %q", v)
	}

	d := progress.NewData(time.Now())
	d.User.Name = "Grace"
	for id := 1; id <= progress.ModuleCount; id++ {
		mp := d.Progress.Module(id)
		mp.Completed = true
		d.Progress[progress.ModuleKey(id)] = mp
	}
	if err := tr.Replace(context.Background(), d); err != nil {
		t.Fatal(err)
	}

	v := s.View(100, 30)
	for _, want := range []string{"Grace", "January 2, 2025", "CERTIFICATE OF COMPLETION"} {
		if !strings.Contains(v, want) {
			t.Errorf("certificate view missing %q", want)
		}
	}
}
