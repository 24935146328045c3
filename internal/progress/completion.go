package progress

// Requirements is what a module asks of the learner before it completes.
type Requirements struct {
	ConceptIDs    []string
	PassThreshold int
}

// CheckCompletion reports whether all required concepts are read, the
// exercise is done and the quiz score meets the threshold.
func CheckCompletion(conceptsRead []string, exerciseCompleted bool, quizScore *int, req Requirements) bool {
	if !exerciseCompleted || quizScore == nil || *quizScore < req.PassThreshold {
		return false
	}
	read := make(map[string]bool, len(conceptsRead))
	for _, id := range conceptsRead {
		read[id] = true
	}
	for _, id := range req.ConceptIDs {
		if !read[id] {
			return false
		}
	}
	return true
}
