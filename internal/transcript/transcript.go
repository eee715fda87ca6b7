// Package transcript models a conversation as an append-only sequence of
// messages. Messages are immutable once appended; the answer service owns
// persistence and this package only mirrors what it returns.
package transcript

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/citedapp/cited/internal/api"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// ApologyText is the fixed message shown in place of an answer when
// generation fails. The user's question stays in the transcript.
const ApologyText = "I'm sorry, something went wrong while generating a response. Please try again."

// Citation binds an in-text marker to its source document.
// DisplayIndex is the 1-based number the marker shows, derived from the
// wire key; it is not the citation's position in the slice.
type Citation struct {
	Key          string
	DisplayIndex int
	Label        string
	SourceID     string
	URL          string
}

// Passage is one supporting excerpt behind a citation.
type Passage struct {
	SourceID    string
	Index       int
	Excerpt     string
	DocumentURL string
}

// Message is a single conversation turn.
type Message struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	Citations []Citation
	Passages  map[string][]Passage // citation key -> supporting excerpts
	CreatedAt time.Time
}

// NewUserMessage creates a user turn.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAIMessage creates an answer turn from the wire response maps.
func NewAIMessage(text string, citations map[string]api.CitationInfo, passages map[string][]api.PassageInfo) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleAI,
		Text:      text,
		Citations: citationsFromWire(citations),
		Passages:  passagesFromWire(passages),
		CreatedAt: time.Now(),
	}
}

// Apology creates the substitute answer turn used when generation fails.
func Apology() Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleAI,
		Text:      ApologyText,
		CreatedAt: time.Now(),
	}
}

// Transcript is the ordered conversation for one session.
type Transcript struct {
	SessionID string
	Messages  []Message
}

// New creates an empty transcript for a session.
func New(sessionID string) *Transcript {
	return &Transcript{SessionID: sessionID}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.Messages = append(t.Messages, msg)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// Last returns the most recent message, or false if the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// LastAnswer returns the most recent AI message, or false if there is none.
func (t *Transcript) LastAnswer() (Message, bool) {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleAI {
			return t.Messages[i], true
		}
	}
	return Message{}, false
}

// FromHistory rebuilds a transcript from the stored conversation, one
// message per wire entry in arrival order.
func FromHistory(resp *api.HistoryResponse) *Transcript {
	t := New(resp.SessionID)
	for _, h := range resp.History {
		role := RoleAI
		if h.Role == "user" {
			role = RoleUser
		}
		t.Append(Message{
			ID:        uuid.New(),
			Role:      role,
			Text:      h.Message,
			Citations: citationsFromWire(h.Citations),
			Passages:  passagesFromWire(h.HighlightedPassages),
			CreatedAt: time.Now(),
		})
	}
	return t
}

// citationsFromWire converts the wire citation map to an ordered slice.
// Keys sort numerically when they parse as integers, lexically otherwise,
// with all numeric keys before non-numeric ones. The display index comes
// from the key itself when numeric, so markers keep the numbers the answer
// text uses even when the set is not contiguous.
func citationsFromWire(wire map[string]api.CitationInfo) []Citation {
	if len(wire) == 0 {
		return nil
	}

	keys := make([]string, 0, len(wire))
	for k := range wire {
		keys = append(keys, k)
	}
	sortKeys(keys)

	citations := make([]Citation, 0, len(keys))
	for i, key := range keys {
		info := wire[key]
		display := i + 1
		if n, err := strconv.Atoi(key); err == nil {
			display = n
		}
		citations = append(citations, Citation{
			Key:          key,
			DisplayIndex: display,
			Label:        info.Filename,
			SourceID:     info.Filename,
			URL:          info.SourceURL,
		})
	}
	return citations
}

func passagesFromWire(wire map[string][]api.PassageInfo) map[string][]Passage {
	if len(wire) == 0 {
		return nil
	}
	out := make(map[string][]Passage, len(wire))
	for key, infos := range wire {
		passages := make([]Passage, 0, len(infos))
		for _, p := range infos {
			passages = append(passages, Passage{
				SourceID:    p.Filename,
				Index:       p.PassageIndex,
				Excerpt:     p.Passage,
				DocumentURL: p.SourceURL,
			})
		}
		out[key] = passages
	}
	return out
}

// PassagesToWire converts passages back to their wire shape, used when
// asking the backend to highlight them in a document.
func PassagesToWire(passages []Passage) []api.PassageInfo {
	if len(passages) == 0 {
		return nil
	}
	out := make([]api.PassageInfo, 0, len(passages))
	for _, p := range passages {
		out = append(out, api.PassageInfo{
			Filename:     p.SourceID,
			SourceURL:    p.DocumentURL,
			Passage:      p.Excerpt,
			PassageIndex: p.Index,
		})
	}
	return out
}

// sortKeys orders citation keys numerically first, then lexically.
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		ni, erri := strconv.Atoi(keys[i])
		nj, errj := strconv.Atoi(keys[j])
		switch {
		case erri == nil && errj == nil:
			return ni < nj
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}
