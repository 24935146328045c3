package content

import "github.com/abhisek/finfluency/internal/answer"

// DefaultPassThreshold is the quiz score a module needs unless it says
// otherwise.
const DefaultPassThreshold = 70

// Module is one of the ten learning units.
type Module struct {
	ID            int                   `yaml:"id" validate:"min=1,max=10"`
	Title         string                `yaml:"title" validate:"required"`
	Summary       string                `yaml:"summary"`
	Estimate      string                `yaml:"estimate" validate:"required"`
	PassThreshold int                   `yaml:"pass_threshold" validate:"omitempty,min=1,max=100"`
	Concepts      []Concept             `yaml:"concepts" validate:"min=1,dive"`
	Quiz          []QuizQuestion        `yaml:"quiz" validate:"min=1,dive"`
	Practice      []PracticeQuestion    `yaml:"practice" validate:"dive"`
	Cases         map[string]string     `yaml:"cases"`
	Exercise      *BalanceSheetExercise `yaml:"exercise" validate:"omitempty"`
	Calculator    bool                  `yaml:"calculator"`
}

// Threshold returns the quiz pass mark for the module.
func (m *Module) Threshold() int {
	if m.PassThreshold == 0 {
		return DefaultPassThreshold
	}
	return m.PassThreshold
}

// ConceptIDs returns the ids of every concept in display order.
func (m *Module) ConceptIDs() []string {
	ids := make([]string, len(m.Concepts))
	for i, c := range m.Concepts {
		ids[i] = c.ID
	}
	return ids
}

// HasPractice reports whether the module's exercise is a set of practice
// questions rather than the balance sheet walkthrough.
func (m *Module) HasPractice() bool {
	return m.Exercise == nil && len(m.Practice) > 0
}

// Concept is a readable section of a module.
type Concept struct {
	ID       string `yaml:"id" validate:"required"`
	Title    string `yaml:"title" validate:"required"`
	Body     string `yaml:"body" validate:"required"`
	Takeaway string `yaml:"takeaway"`
	Example  string `yaml:"example"`
}

// Option is a labelled multiple-choice option.
type Option struct {
	ID   string `yaml:"id" validate:"required"`
	Text string `yaml:"text" validate:"required"`
}

// QuizQuestion is a single-answer multiple-choice question.
type QuizQuestion struct {
	ID              int      `yaml:"id" validate:"gt=0"`
	Text            string   `yaml:"text" validate:"required"`
	Options         []Option `yaml:"options" validate:"min=2,dive"`
	CorrectOptionID string   `yaml:"correct" validate:"required"`
	Explanation     string   `yaml:"explanation"`
}

// InputField describes one entry box of a multi-input question.
type InputField struct {
	Key    string `yaml:"key" validate:"required"`
	Label  string `yaml:"label" validate:"required"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// PracticeQuestion is a worked problem with hints and a solution.
type PracticeQuestion struct {
	ID          int          `yaml:"id" validate:"gt=0"`
	Text        string       `yaml:"text" validate:"required"`
	Case        string       `yaml:"case"`
	Type        answer.Kind  `yaml:"type" validate:"required"`
	Options     []Option     `yaml:"options" validate:"dive"`
	InputFields []InputField `yaml:"fields" validate:"dive"`
	Prefix      string       `yaml:"prefix"`
	Suffix      string       `yaml:"suffix"`
	Answer      Answer       `yaml:"answer"`
	Hints       []string     `yaml:"hints"`
	Solution    string       `yaml:"solution" validate:"required"`
}

// BalanceSheetExercise is the guided transaction walkthrough.
type BalanceSheetExercise struct {
	Company      string            `yaml:"company" validate:"required"`
	Initial      map[Account]int64 `yaml:"initial" validate:"required"`
	Transactions []Transaction     `yaml:"transactions" validate:"min=1,dive"`
}

// TransactionInput is an account the learner may adjust for a transaction.
type TransactionInput struct {
	Account Account `yaml:"account" validate:"required"`
	Label   string  `yaml:"label"`
}

// DisplayLabel returns the input label, falling back to the account name.
func (in TransactionInput) DisplayLabel() string {
	if in.Label != "" {
		return in.Label
	}
	return in.Account.Label()
}

// Transaction is one step of the balance sheet exercise.
type Transaction struct {
	ID             int                `yaml:"id" validate:"gt=0"`
	Date           string             `yaml:"date" validate:"required"`
	Scenario       string             `yaml:"scenario" validate:"required"`
	Inputs         []TransactionInput `yaml:"inputs" validate:"min=1,dive"`
	CorrectChanges map[Account]int64  `yaml:"changes" validate:"min=1"`
	Hints          []string           `yaml:"hints"`
	Explanation    string             `yaml:"explanation" validate:"required"`
}

// Term is a glossary entry.
type Term struct {
	Term       string `yaml:"term" validate:"required"`
	Definition string `yaml:"definition" validate:"required"`
	Module     int    `yaml:"module" validate:"min=1,max=10"`
}
