package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/progress"
)

// validateContent runs field-level tag validation followed by the
// structural checks tags cannot express. All problems are reported together.
func validateContent(v *validator.Validate, modules []Module, glossary []Term) error {
	var errs []string

	for i := range modules {
		if err := v.Struct(&modules[i]); err != nil {
			errs = append(errs, fmt.Sprintf("module %d: %s", modules[i].ID, tagErrors(err)))
		}
	}
	for i := range glossary {
		if err := v.Struct(&glossary[i]); err != nil {
			errs = append(errs, fmt.Sprintf("glossary %q: %s", glossary[i].Term, tagErrors(err)))
		}
	}

	errs = append(errs, checkModuleSet(modules)...)
	for i := range modules {
		errs = append(errs, checkModule(&modules[i])...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("content validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func tagErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// checkModuleSet verifies ids are unique and cover 1..ModuleCount.
func checkModuleSet(modules []Module) []string {
	var errs []string
	seen := make(map[int]bool, len(modules))
	for _, m := range modules {
		if seen[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %d", m.ID))
		}
		seen[m.ID] = true
	}
	for id := 1; id <= progress.ModuleCount; id++ {
		if !seen[id] {
			errs = append(errs, fmt.Sprintf("module %d is missing", id))
		}
	}
	return errs
}

func checkModule(m *Module) []string {
	var errs []string
	prefix := fmt.Sprintf("module %d", m.ID)

	conceptIDs := make(map[string]bool, len(m.Concepts))
	for _, c := range m.Concepts {
		if conceptIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate concept ID %q", prefix, c.ID))
		}
		conceptIDs[c.ID] = true
	}

	quizIDs := make(map[int]bool, len(m.Quiz))
	for _, q := range m.Quiz {
		if quizIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate quiz question ID %d", prefix, q.ID))
		}
		quizIDs[q.ID] = true
		if !hasOption(q.Options, q.CorrectOptionID) {
			errs = append(errs, fmt.Sprintf("%s quiz %d: correct option %q is not among the options", prefix, q.ID, q.CorrectOptionID))
		}
	}

	practiceIDs := make(map[int]bool, len(m.Practice))
	for _, q := range m.Practice {
		if practiceIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate practice question ID %d", prefix, q.ID))
		}
		practiceIDs[q.ID] = true
		if q.Case != "" {
			if _, ok := m.Cases[q.Case]; !ok {
				errs = append(errs, fmt.Sprintf("%s practice %d: unknown case %q", prefix, q.ID, q.Case))
			}
		}
		errs = append(errs, checkPractice(fmt.Sprintf("%s practice %d", prefix, q.ID), q)...)
	}

	if m.Exercise == nil && len(m.Practice) == 0 {
		errs = append(errs, fmt.Sprintf("%s: needs practice questions or a balance sheet exercise", prefix))
	}
	if m.Exercise != nil {
		errs = append(errs, checkExercise(prefix, m.Exercise)...)
	}
	return errs
}

func checkPractice(prefix string, q PracticeQuestion) []string {
	var errs []string
	expected := q.Answer.Expected

	if !q.Type.Valid() {
		return []string{fmt.Sprintf("%s: unknown type %q", prefix, q.Type)}
	}
	if expected.IsZero() {
		return []string{fmt.Sprintf("%s: no answer configured", prefix)}
	}

	switch q.Type {
	case answer.KindMultipleChoice:
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: multiple-choice needs at least 2 options", prefix))
		}
		if expected.Shape() == answer.ShapeFieldMap {
			errs = append(errs, fmt.Sprintf("%s: multiple-choice answer cannot be a field map", prefix))
			break
		}
		for _, v := range expected.Values() {
			if !hasOption(q.Options, v.Text) {
				errs = append(errs, fmt.Sprintf("%s: answer %q is not among the options", prefix, v.Text))
			}
		}

	case answer.KindNumber:
		if expected.Shape() == answer.ShapeFieldMap {
			errs = append(errs, fmt.Sprintf("%s: number answer cannot be a field map", prefix))
			break
		}
		for _, v := range expected.Values() {
			if _, ok := v.Float(); !ok {
				errs = append(errs, fmt.Sprintf("%s: answer %q is not numeric", prefix, v.Text))
			}
		}

	case answer.KindText:
		if expected.Shape() == answer.ShapeFieldMap {
			errs = append(errs, fmt.Sprintf("%s: text answer cannot be a field map", prefix))
		}

	case answer.KindMultiInput:
		if expected.Shape() != answer.ShapeFieldMap {
			errs = append(errs, fmt.Sprintf("%s: multi-input answer must be a field map", prefix))
			break
		}
		keys := make([]string, 0, len(q.InputFields))
		for _, f := range q.InputFields {
			keys = append(keys, f.Key)
		}
		slices.Sort(keys)
		if !slices.Equal(keys, expected.FieldKeys()) {
			errs = append(errs, fmt.Sprintf("%s: field keys %v do not match answer keys %v", prefix, keys, expected.FieldKeys()))
		}
	}
	return errs
}

func checkExercise(prefix string, ex *BalanceSheetExercise) []string {
	var errs []string

	for a := range ex.Initial {
		if !a.Valid() {
			errs = append(errs, fmt.Sprintf("%s exercise: unknown account %q in initial balances", prefix, a))
		}
	}
	if d := imbalance(ex.Initial); d != 0 {
		errs = append(errs, fmt.Sprintf("%s exercise: initial balance sheet is off by %d", prefix, d))
	}

	txIDs := make(map[int]bool, len(ex.Transactions))
	for _, tx := range ex.Transactions {
		txPrefix := fmt.Sprintf("%s transaction %d", prefix, tx.ID)
		if txIDs[tx.ID] {
			errs = append(errs, fmt.Sprintf("%s exercise: duplicate transaction ID %d", prefix, tx.ID))
		}
		txIDs[tx.ID] = true

		inputs := make(map[Account]bool, len(tx.Inputs))
		for _, in := range tx.Inputs {
			if !in.Account.Valid() {
				errs = append(errs, fmt.Sprintf("%s: unknown input account %q", txPrefix, in.Account))
			}
			inputs[in.Account] = true
		}
		for a := range tx.CorrectChanges {
			if !inputs[a] {
				errs = append(errs, fmt.Sprintf("%s: change to %q has no input", txPrefix, a))
			}
		}
		if d := imbalance(tx.CorrectChanges); d != 0 {
			errs = append(errs, fmt.Sprintf("%s: changes leave the equation off by %d", txPrefix, d))
		}
	}
	return errs
}

// imbalance returns assets minus liabilities and equity.
func imbalance(balances map[Account]int64) int64 {
	var d int64
	for a, v := range balances {
		if a.Side() == SideAsset {
			d += v
		} else {
			d -= v
		}
	}
	return d
}

func hasOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
