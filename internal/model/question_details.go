package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Question type identifiers persisted in FeedbackQuestion.QuestionType.
const (
	QuestionTypeText     = "text"
	QuestionTypeMCQ      = "mcq"
	QuestionTypeNumScale = "numscale"
	QuestionTypeContrib  = "contrib"
)

// QuestionDetails is the behavior capsule of a question type: how an
// answer renders, how statistics are computed, whether rows need a
// type-specific sort order, and whether a missing response should be
// shown as a placeholder row. Resolved once per question and reused.
type QuestionDetails interface {
	// AnswerDisplay renders a response's answer payload for the results view.
	AnswerDisplay(answerText string) string

	// Statistics renders an aggregate over the given responses, or ""
	// when the type has no statistics.
	Statistics(question *FeedbackQuestion, responses []*FeedbackResponse) string

	// RequiresCustomSorting reports whether RowsLess replaces the
	// default team/name ordering of response rows.
	RequiresCustomSorting() bool

	// RowsLess is the type-specific row comparator; only meaningful
	// when RequiresCustomSorting is true.
	RowsLess(a, b *ResponseRow) bool

	// ShouldShowNoResponseText reports whether a placeholder row is
	// emitted for an eligible pair with no response.
	ShouldShowNoResponseText(question *FeedbackQuestion) bool

	// NoResponseText is the placeholder answer shown for missing rows.
	NoResponseText() string

	// CommentsAllowed reports whether responses of this type accept comments.
	CommentsAllowed() bool
}

// DetailsFor resolves the capsule for a question type. Unknown types
// behave like essay text questions.
func DetailsFor(questionType string) QuestionDetails {
	switch questionType {
	case QuestionTypeMCQ:
		return mcqQuestionDetails{}
	case QuestionTypeNumScale:
		return numScaleQuestionDetails{}
	case QuestionTypeContrib:
		return contribQuestionDetails{}
	default:
		return textQuestionDetails{}
	}
}

type textQuestionDetails struct{}

func (textQuestionDetails) AnswerDisplay(answerText string) string { return answerText }

func (textQuestionDetails) Statistics(*FeedbackQuestion, []*FeedbackResponse) string { return "" }

func (textQuestionDetails) RequiresCustomSorting() bool     { return false }
func (textQuestionDetails) RowsLess(_, _ *ResponseRow) bool { return false }

func (textQuestionDetails) ShouldShowNoResponseText(*FeedbackQuestion) bool { return true }
func (textQuestionDetails) NoResponseText() string                          { return "No Response" }
func (textQuestionDetails) CommentsAllowed() bool                           { return true }

type mcqQuestionDetails struct{}

func (mcqQuestionDetails) AnswerDisplay(answerText string) string { return answerText }

// Statistics counts responses per option, including write-in answers
// that match no configured option.
func (mcqQuestionDetails) Statistics(question *FeedbackQuestion, responses []*FeedbackResponse) string {
	if len(responses) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, r := range responses {
		counts[r.AnswerText]++
	}

	options := question.OptionList()
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		seen[o] = true
	}
	var extras []string
	for answer := range counts {
		if !seen[answer] {
			extras = append(extras, answer)
		}
	}
	sort.Strings(extras)

	var b strings.Builder
	total := len(responses)
	for _, option := range append(options, extras...) {
		count := counts[option]
		fmt.Fprintf(&b, "%s: %d (%d%%)\n", option, count, count*100/total)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (mcqQuestionDetails) RequiresCustomSorting() bool     { return false }
func (mcqQuestionDetails) RowsLess(_, _ *ResponseRow) bool { return false }

func (mcqQuestionDetails) ShouldShowNoResponseText(*FeedbackQuestion) bool { return true }
func (mcqQuestionDetails) NoResponseText() string                          { return "No Response" }
func (mcqQuestionDetails) CommentsAllowed() bool                           { return true }

type numScaleQuestionDetails struct{}

func (numScaleQuestionDetails) AnswerDisplay(answerText string) string { return answerText }

func (numScaleQuestionDetails) Statistics(question *FeedbackQuestion, responses []*FeedbackResponse) string {
	var values []float64
	for _, r := range responses {
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.AnswerText), 64); err == nil {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return fmt.Sprintf("Average: %.2f Minimum: %s Maximum: %s",
		sum/float64(len(values)), formatScale(min), formatScale(max))
}

func formatScale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (numScaleQuestionDetails) RequiresCustomSorting() bool { return true }

// RowsLess orders numerically by answer, missing rows and unparsable
// answers last, ties broken by the default team/name order.
func (numScaleQuestionDetails) RowsLess(a, b *ResponseRow) bool {
	av, aok := parseRowValue(a)
	bv, bok := parseRowValue(b)
	if aok != bok {
		return aok
	}
	if aok && av != bv {
		return av < bv
	}
	return DefaultRowLess(a, b)
}

func parseRowValue(row *ResponseRow) (float64, bool) {
	if row.Missing {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row.Answer), 64)
	return v, err == nil
}

func (numScaleQuestionDetails) ShouldShowNoResponseText(*FeedbackQuestion) bool { return true }
func (numScaleQuestionDetails) NoResponseText() string                          { return "No Response" }
func (numScaleQuestionDetails) CommentsAllowed() bool                           { return true }

// contribQuestionDetails covers team-contribution questions, where a
// missing response is itself a meaningful "Not Submitted" signal in the
// statistics and placeholder rows would double-count it.
type contribQuestionDetails struct{}

func (contribQuestionDetails) AnswerDisplay(answerText string) string {
	if v, err := strconv.Atoi(strings.TrimSpace(answerText)); err == nil {
		return fmt.Sprintf("Equal Share %+d%%", v-100)
	}
	return answerText
}

func (contribQuestionDetails) Statistics(question *FeedbackQuestion, responses []*FeedbackResponse) string {
	var sum, n int
	for _, r := range responses {
		if v, err := strconv.Atoi(strings.TrimSpace(r.AnswerText)); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Average claimed contribution: %d%%", sum/n)
}

func (contribQuestionDetails) RequiresCustomSorting() bool     { return false }
func (contribQuestionDetails) RowsLess(_, _ *ResponseRow) bool { return false }

func (contribQuestionDetails) ShouldShowNoResponseText(*FeedbackQuestion) bool { return false }
func (contribQuestionDetails) NoResponseText() string                          { return "Not Submitted" }
func (contribQuestionDetails) CommentsAllowed() bool                           { return false }
