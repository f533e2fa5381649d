package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"meeting-rag/internal/llmservice"
	"meeting-rag/internal/models"
)

// Retriever is the slice of the retrieval engine the chat engine needs.
type Retriever interface {
	Retrieve(ctx context.Context, meetingID, query string) ([]string, error)
}

type turn struct {
	question string
	answer   string
}

type session struct {
	turns []turn
}

func (s *session) history() string {
	if len(s.turns) == 0 {
		return "(no previous turns)"
	}
	var sb strings.Builder
	for _, t := range s.turns {
		sb.WriteString("User: " + t.question + "\n")
		sb.WriteString("Assistant: " + t.answer + "\n")
	}
	return sb.String()
}

// Engine answers questions about one meeting, grounded in retrieved chunks,
// keeping a bounded per-meeting conversation window in process memory.
// Callers must serialize turns per meeting or accept last-write-wins history.
type Engine struct {
	retriever Retriever
	generator llmservice.Generator
	window    int

	mu       sync.Mutex
	sessions map[string]*session
}

func NewEngine(retriever Retriever, generator llmservice.Generator, window int) *Engine {
	return &Engine{
		retriever: retriever,
		generator: generator,
		window:    window,
		sessions:  make(map[string]*session),
	}
}

// Ask answers one question grounded in the meeting's indexed content. Blank
// questions get a canned reply without touching the session or any model.
// Failures surface unchanged and never append a half-turn to the session.
func (e *Engine) Ask(ctx context.Context, meetingID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return models.InvalidQuestionReply, nil
	}

	chunks, err := e.retriever.Retrieve(ctx, meetingID, question)
	if err != nil {
		return "", err
	}
	log.Debug().Str("meeting_id", meetingID).Int("context_chunks", len(chunks)).Msg("answering question")

	e.mu.Lock()
	s := e.sessions[meetingID]
	if s == nil {
		s = &session{}
		e.sessions[meetingID] = s
	}
	history := s.history()
	e.mu.Unlock()

	prompt := fmt.Sprintf(models.ChatPromptTemplate, strings.Join(chunks, "\n\n"), history, question)
	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = models.NotFoundReply
	}

	e.mu.Lock()
	s.turns = append(s.turns, turn{question: question, answer: answer})
	if excess := len(s.turns) - e.window; excess > 0 {
		s.turns = s.turns[excess:]
	}
	e.mu.Unlock()

	return answer, nil
}

// Reset drops the conversation window for a meeting.
func (e *Engine) Reset(meetingID string) {
	e.mu.Lock()
	delete(e.sessions, meetingID)
	e.mu.Unlock()
}
