package draft

import (
	"slices"
	"strings"
)

// Case is a single suggested citation for an issue.
type Case struct {
	Name     string `json:"name"`
	Citation string `json:"citation"`
	Fragment string `json:"fragment"`
}

// CaseGroup pairs a legal issue with its candidate cases. Error is set by
// the service when the case-law search for the issue failed.
type CaseGroup struct {
	Issue string `json:"issue"`
	Cases []Case `json:"cases"`
	Error string `json:"error,omitempty"`
}

// AnalysisResult is the service's answer for one draft. Questions keep the
// order the service returned them in; feedback relies on that order.
type AnalysisResult struct {
	DraftText  string      `json:"draft_text"`
	Questions  []string    `json:"questions"`
	CaseGroups []CaseGroup `json:"cases"`
}

// Clone returns a deep copy so stored results cannot be mutated through
// a returned value.
func (r AnalysisResult) Clone() AnalysisResult {
	out := AnalysisResult{
		DraftText: r.DraftText,
		Questions: slices.Clone(r.Questions),
	}
	if r.CaseGroups != nil {
		out.CaseGroups = make([]CaseGroup, len(r.CaseGroups))
		for i, g := range r.CaseGroups {
			out.CaseGroups[i] = CaseGroup{
				Issue: g.Issue,
				Cases: slices.Clone(g.Cases),
				Error: g.Error,
			}
		}
	}
	return out
}

// PredictedText joins the questions with newlines, the form they are
// edited and sent back in.
func (r AnalysisResult) PredictedText() string {
	return JoinQuestions(r.Questions)
}

// JoinQuestions joins questions with "\n". A nil slice yields "".
func JoinQuestions(questions []string) string {
	return strings.Join(questions, "\n")
}

// FeedbackNotice is shown after every feedback submission. It does not
// depend on whether the service accepted the feedback.
const FeedbackNotice = "Feedback submitted. Thanks for improving the AI!"

// Feedback is a user's correction of the predicted questions.
type Feedback struct {
	DraftText string `json:"draft_text"`
	Predicted string `json:"predicted"`
	Corrected string `json:"corrected"`
}
