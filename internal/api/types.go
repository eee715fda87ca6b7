package api

// Wire types for the answer service. Field names match the backend's
// snake_case JSON exactly; timestamps stay as ISO-8601 strings on the wire
// and are parsed by consumers.

// ChatInfo is a chat session's metadata as returned by the backend.
type ChatInfo struct {
	SessionID  string  `json:"session_id"`
	Name       string  `json:"name"`
	ProjectID  *string `json:"project_id"`
	IsFavorite bool    `json:"is_favorite"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	Summary    string  `json:"summary,omitempty"`
}

// ProjectInfo is a project as returned by the backend.
type ProjectInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ProjectBucket pairs a project with the chats assigned to it.
type ProjectBucket struct {
	Project ProjectInfo `json:"project"`
	Chats   []ChatInfo  `json:"chats"`
}

// ChatList is the organized session listing. The same chat may appear in
// Favorites and in a project bucket; the buckets are a display overlay,
// not a partition.
type ChatList struct {
	Favorites []ChatInfo               `json:"favorites"`
	Projects  map[string]ProjectBucket `json:"projects"`
	NoProject []ChatInfo               `json:"no_project"`
}

// CitationInfo identifies the source document behind a citation key.
type CitationInfo struct {
	Filename  string `json:"filename"`
	SourceURL string `json:"source_url"`
}

// PassageInfo is one highlighted excerpt of a source document.
type PassageInfo struct {
	Filename     string `json:"filename"`
	SourceURL    string `json:"source_url"`
	Passage      string `json:"passage"`
	PassageIndex int    `json:"passage_index"`
}

// HistoryMessage is one turn of a stored conversation.
type HistoryMessage struct {
	Role                string                   `json:"role"` // "user" or "assistant"
	Message             string                   `json:"message"`
	Citations           map[string]CitationInfo  `json:"citations,omitempty"`
	HighlightedPassages map[string][]PassageInfo `json:"highlighted_passages,omitempty"`
}

// HistoryResponse is the stored conversation for one session.
type HistoryResponse struct {
	SessionID string           `json:"session_id"`
	History   []HistoryMessage `json:"history"`
}

// GenerateResponse is the answer to one query.
type GenerateResponse struct {
	SessionID           string                   `json:"session_id"`
	Answer              string                   `json:"answer"`
	Citations           map[string]CitationInfo  `json:"citations"`
	HighlightedPassages map[string][]PassageInfo `json:"highlighted_passages"`
}

// NewChatResponse is returned when a new session is created.
type NewChatResponse struct {
	SessionID string   `json:"session_id"`
	Metadata  ChatInfo `json:"metadata"`
}

// CreateProjectResponse is returned when a new project is created.
type CreateProjectResponse struct {
	ProjectID string      `json:"project_id"`
	Project   ProjectInfo `json:"project"`
}

// DocumentHighlight is a resolved highlight span within a document.
type DocumentHighlight struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Passage string `json:"passage"`
}

// DocumentResponse is a source document's full text plus highlight spans.
type DocumentResponse struct {
	Content    string              `json:"content"`
	Highlights []DocumentHighlight `json:"highlights"`
	Filename   string              `json:"filename"`
}
