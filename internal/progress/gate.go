package progress

// IsLocked reports whether a module is unavailable. Module 1 is always
// open; module N opens once module N-1 is complete.
func IsLocked(moduleID int, p AppProgress) bool {
	if moduleID <= 1 {
		return false
	}
	prev, ok := p[ModuleKey(moduleID-1)]
	return !ok || !prev.Completed
}

// NextUnlocked returns the first module that is open but not complete.
// It returns 0 when every module is complete.
func NextUnlocked(p AppProgress) int {
	for id := 1; id <= ModuleCount; id++ {
		if IsLocked(id, p) {
			return 0
		}
		if !p.Module(id).Completed {
			return id
		}
	}
	return 0
}

// AllComplete reports whether every module is complete.
func AllComplete(p AppProgress) bool {
	return p.CompletedCount() == ModuleCount
}

// OverallPercent returns the share of completed modules, rounded.
func OverallPercent(p AppProgress) int {
	return (p.CompletedCount()*100 + ModuleCount/2) / ModuleCount
}

// AverageQuizScore returns the mean of attempted quiz scores and the
// number of attempted quizzes.
func AverageQuizScore(p AppProgress) (float64, int) {
	total, n := 0, 0
	for id := 1; id <= ModuleCount; id++ {
		if s := p.Module(id).QuizScore; s != nil {
			total += *s
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(total) / float64(n), n
}
