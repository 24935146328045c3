package progress

import "testing"

func score(n int) *int { return &n }

func TestCheckCompletion(t *testing.T) {
	req := Requirements{ConceptIDs: []string{"c1", "c2", "c3", "c4"}, PassThreshold: 70}
	allRead := []string{"c1", "c2", "c3", "c4"}

	tests := []struct {
		name     string
		read     []string
		exercise bool
		quiz     *int
		req      Requirements
		want     bool
	}{
		{"all conditions met", allRead, true, score(80), req, true},
		{"score exactly at threshold", allRead, true, score(70), req, true},
		{"score below threshold", allRead, true, score(69), req, false},
		{"quiz not taken", allRead, true, nil, req, false},
		{"exercise not done", allRead, false, score(100), req, false},
		{"one concept unread", []string{"c1", "c2", "c3"}, true, score(100), req, false},
		{"extra concepts read", append([]string{"c9"}, allRead...), true, score(90), req, true},
		{"module 10 at 70 fails", allRead, true, score(70), Requirements{ConceptIDs: allRead, PassThreshold: 80}, false},
		{"module 10 at 80 passes", allRead, true, score(80), Requirements{ConceptIDs: allRead, PassThreshold: 80}, true},
		{"no required concepts", nil, true, score(75), Requirements{PassThreshold: 70}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCompletion(tc.read, tc.exercise, tc.quiz, tc.req)
			if got != tc.want {
				t.Errorf("CheckCompletion() = %v, want %v", got, tc.want)
			}
		})
	}
}
