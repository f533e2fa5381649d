package models

const (
	// CollectionName is the chromem collection used inside every meeting index.
	CollectionName = "meeting_chunks"

	// InvalidQuestionReply is returned for blank questions. No retrieval or
	// model call happens in that case.
	InvalidQuestionReply = "Please ask a valid question."

	// NotFoundReply is the grounded fallback when the retrieved context does
	// not contain the answer, or the model returns an empty string.
	NotFoundReply = "Not found in the meeting transcript."
)

var (
	ChatPromptTemplate = `Answer ONLY using the context below.

Rules:
- Do not guess.
- If the answer is not in the context say: "Not found in the meeting transcript."
- Answer in the same language as the user's question.

Context:
%s

Conversation so far:
%s

Question:
%s
`

	HighlightsPromptTemplate = `Extract meeting highlights from the text below.

Rules:
- Only include decisions, action items, deadlines and critical conclusions.
- One short sentence per line, no bullets, no numbering.
- At most %d lines.
- Skip filler conversation and near-duplicate points.

Text:
%s
`
)

// HighlightQueries is the fixed battery run against every meeting index when
// building a highlights document.
var HighlightQueries = []string{
	"important topics discussed",
	"decisions made in the meeting",
	"action items and tasks assigned",
	"deadlines or commitments",
	"critical conclusions",
}
