package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/citedapp/cited/internal/api"
	"github.com/citedapp/cited/internal/config"
	apperrors "github.com/citedapp/cited/internal/errors"
	"github.com/citedapp/cited/internal/notification"
	"github.com/citedapp/cited/internal/registry"
	"github.com/citedapp/cited/internal/transcript"
	"github.com/citedapp/cited/internal/ui"
)

// newTestModel creates a model with a terminal size applied
func newTestModel() *Model {
	cfg := &config.Config{BackendURL: "http://localhost:0", NotificationsEnabled: true}
	m := New(cfg, "test")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func testRegistryView() registry.View {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return registry.Organize(
		[]registry.ChatSummary{
			{ID: "s1", Name: "alpha", UpdatedAt: now},
			{ID: "s2", Name: "beta", UpdatedAt: now.Add(time.Hour)},
		},
		nil,
	)
}

func TestNew(t *testing.T) {
	m := newTestModel()

	if m.focus != FocusSidebar {
		t.Error("Focus should start on the sidebar")
	}
	if m.ActiveChatID() != "" {
		t.Error("No chat should be active initially")
	}
	if m.client == nil {
		t.Fatal("Client should be initialized")
	}
}

func TestHandleChatsLoaded(t *testing.T) {
	m := newTestModel()

	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})

	if m.view.Count() != 2 {
		t.Errorf("View should hold 2 chats, got %d", m.view.Count())
	}
	if m.sidebar.SelectedChat() == nil {
		t.Error("Sidebar should have a selectable chat")
	}
}

func TestHandleChatsLoaded_Error_KeepsOldView(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})

	m.handleChatsLoaded(ChatsLoadedMsg{Err: errors.New("boom")})

	if m.view.Count() != 2 {
		t.Error("A failed refresh should keep the previous view")
	}
	if !m.footer.HasFlash() {
		t.Error("A failed refresh should flash an error")
	}
}

func TestHandleChatsLoaded_PendingSelect(t *testing.T) {
	m := newTestModel()
	m.pendingSelect = "s2"

	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})

	chat := m.sidebar.SelectedChat()
	if chat == nil || chat.ID != "s2" {
		t.Errorf("Sidebar should select the pending chat, got %+v", chat)
	}
	if m.pendingSelect != "" {
		t.Error("pendingSelect should be cleared")
	}
}

func TestHandleChatsLoaded_ActiveChatDisappeared(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	// A refresh without s1 closes the foreground conversation
	view := registry.Organize([]registry.ChatSummary{{ID: "s2", Name: "beta"}}, nil)
	m.handleChatsLoaded(ChatsLoadedMsg{View: view})

	if m.ActiveChatID() != "" {
		t.Error("Vanished chat should be closed")
	}
	if m.chat.HasChat() {
		t.Error("Chat panel should be cleared")
	}
}

func TestProjectPickers_IncludeEmptyProject(t *testing.T) {
	m := newTestModel()

	// A just-created project has no chats yet but must still be offered
	view := registry.Organize(
		[]registry.ChatSummary{{ID: "s1", Name: "alpha"}},
		[]registry.Project{{ID: "p2", Name: "Fresh"}},
	)
	m.handleChatsLoaded(ChatsLoadedMsg{View: view})

	projects := m.projects()
	if len(projects) != 1 || projects[0].ID != "p2" {
		t.Fatalf("projects() = %+v, want the empty project", projects)
	}

	state := ui.NewNewChatState(projects)
	if !strings.Contains(state.Render(), "Fresh") {
		t.Error("New-chat picker should offer the empty project")
	}

	move := ui.NewMoveToProjectState("s1", projects)
	if !strings.Contains(move.Render(), "Fresh") {
		t.Error("Move-to-project picker should offer the empty project")
	}
}

func TestSendQuestion(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	m.chat.SetInput("what is retrieval?")
	cmd := m.sendQuestion()
	if cmd == nil {
		t.Fatal("sendQuestion should return commands")
	}

	tr := m.transcripts["s1"]
	if tr == nil || tr.Len() != 1 {
		t.Fatalf("Question should be appended optimistically, len=%v", tr)
	}
	if tr.Messages[0].Role != transcript.RoleUser {
		t.Error("Appended message should be the user turn")
	}
	if _, ok := m.pending["s1"]; !ok {
		t.Error("Question should be pending")
	}
	if !m.sidebar.IsChatAwaiting("s1") {
		t.Error("Sidebar should mark the chat as awaiting")
	}
	if m.chat.GetInput() != "" {
		t.Error("Input should be cleared after send")
	}
}

func TestSendQuestion_BlockedWhilePending(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	m.chat.SetInput("first")
	m.sendQuestion()
	m.chat.SetInput("second")
	m.sendQuestion()

	if m.transcripts["s1"].Len() != 1 {
		t.Error("Second question should be rejected while one is pending")
	}
}

func TestHandleGenerateResult_Success(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")
	m.chat.SetInput("what is retrieval?")
	m.sendQuestion()

	m.handleGenerateResult(GenerateResultMsg{
		SessionID: "s1",
		Question:  "what is retrieval?",
		Response: &api.GenerateResponse{
			Answer: "Retrieval finds documents [1].",
			Citations: map[string]api.CitationInfo{
				"1": {Filename: "intro.md"},
			},
		},
	})

	tr := m.transcripts["s1"]
	if tr.Len() != 2 {
		t.Fatalf("Transcript should have question and answer, got %d", tr.Len())
	}
	last, _ := tr.Last()
	if last.Role != transcript.RoleAI {
		t.Error("Last message should be the answer")
	}
	if len(last.Citations) != 1 {
		t.Errorf("Answer should carry 1 citation, got %d", len(last.Citations))
	}
	if _, ok := m.pending["s1"]; ok {
		t.Error("Pending entry should be cleared")
	}
	if m.sidebar.IsChatAwaiting("s1") {
		t.Error("Sidebar should stop the spinner")
	}
	if m.chat.IsWaiting() {
		t.Error("Chat panel should stop waiting")
	}
}

func TestHandleGenerateResult_Failure_AppendsApology(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")
	m.chat.SetInput("what is retrieval?")
	m.sendQuestion()

	m.handleGenerateResult(GenerateResultMsg{
		SessionID: "s1",
		Question:  "what is retrieval?",
		Err:       errors.New("backend exploded"),
	})

	tr := m.transcripts["s1"]
	if tr.Len() != 2 {
		t.Fatalf("Failed turn should keep question and add apology, got %d", tr.Len())
	}
	last, _ := tr.Last()
	if last.Text != transcript.ApologyText {
		t.Errorf("Last message should be the apology, got %q", last.Text)
	}
	if !m.footer.HasFlash() {
		t.Error("Failure should flash an error")
	}
}

func TestHandleGenerateResult_Stale_Dropped(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	// No pending entry for this session
	m.handleGenerateResult(GenerateResultMsg{
		SessionID: "s1",
		Response:  &api.GenerateResponse{Answer: "late answer"},
	})

	if tr := m.transcripts["s1"]; tr != nil && tr.Len() != 0 {
		t.Error("Stale answer must not touch the transcript")
	}
}

func TestHandleGenerateResult_Background_Notifies(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")
	m.chat.SetInput("question for s1")
	m.sendQuestion()

	// Switch to another chat while s1 waits
	m.openChat("s2")

	var notified []string
	notification.SetNotifier(func(title, message string, icon any) error {
		notified = append(notified, message)
		return nil
	})
	defer notification.ResetNotifier()

	m.handleGenerateResult(GenerateResultMsg{
		SessionID: "s1",
		Response:  &api.GenerateResponse{Answer: "background answer"},
	})

	if m.transcripts["s1"].Len() != 2 {
		t.Error("Background answer should land in its transcript")
	}
	if got := m.transcripts["s2"]; got != nil && got.Len() != 0 {
		t.Error("Foreground transcript must not change")
	}
	if len(notified) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notified))
	}
}

func TestHandleGenerateResult_Background_NoNotificationWhenDisabled(t *testing.T) {
	m := newTestModel()
	m.config.SetNotificationsEnabled(false)
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")
	m.chat.SetInput("question")
	m.sendQuestion()
	m.openChat("s2")

	var notified int
	notification.SetNotifier(func(title, message string, icon any) error {
		notified++
		return nil
	})
	defer notification.ResetNotifier()

	m.handleGenerateResult(GenerateResultMsg{
		SessionID: "s1",
		Response:  &api.GenerateResponse{Answer: "background answer"},
	})

	if notified != 0 {
		t.Error("Notifications disabled, none should be sent")
	}
}

func TestHandleChatDeleted_ClearsActive(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")
	m.chat.SetInput("question")
	m.sendQuestion()

	m.handleChatDeleted(ChatDeletedMsg{SessionID: "s1"})

	if m.ActiveChatID() != "" {
		t.Error("Deleting the active chat should close it")
	}
	if _, ok := m.transcripts["s1"]; ok {
		t.Error("Transcript cache should be dropped")
	}
	if _, ok := m.pending["s1"]; ok {
		t.Error("Pending entry should be dropped")
	}
	if m.focus != FocusSidebar {
		t.Error("Focus should return to the sidebar")
	}
}

func TestHandleHistoryLoaded(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	tr := transcript.New("s1")
	tr.Append(transcript.NewUserMessage("earlier question"))
	m.handleHistoryLoaded(HistoryLoadedMsg{SessionID: "s1", Transcript: tr})

	if m.transcripts["s1"] != tr {
		t.Error("History should be cached")
	}

	// History for a background chat is cached without touching the panel
	tr2 := transcript.New("s2")
	m.handleHistoryLoaded(HistoryLoadedMsg{SessionID: "s2", Transcript: tr2})
	if m.transcripts["s2"] != tr2 {
		t.Error("Background history should be cached")
	}
}

func TestHandleDocumentLoaded_FallbackOnError(t *testing.T) {
	m := newTestModel()

	m.handleDocumentLoaded(DocumentLoadedMsg{
		SourceID: "intro.md",
		Passages: []transcript.Passage{{SourceID: "intro.md", Excerpt: "a passage"}},
		Err:      errors.New("404"),
	})

	if !m.docView.IsVisible() {
		t.Error("Fallback excerpts should still open the overlay")
	}
	if !m.footer.HasFlash() {
		t.Error("Fallback should flash a warning")
	}
}

func TestHandleDocumentLoaded_Success(t *testing.T) {
	m := newTestModel()

	m.handleDocumentLoaded(DocumentLoadedMsg{
		SourceID: "intro.md",
		URL:      "http://docs/intro",
		Document: &api.DocumentResponse{
			Filename: "intro.md",
			Content:  "Retrieval finds documents.",
			Highlights: []api.DocumentHighlight{
				{Start: 0, End: 9, Passage: "Retrieval"},
			},
		},
	})

	if !m.docView.IsVisible() {
		t.Error("Overlay should open")
	}
	if m.docView.Title() != "intro.md" {
		t.Errorf("Overlay title = %q", m.docView.Title())
	}
}

func TestExportTranscript_UnknownFormat(t *testing.T) {
	m := newTestModel()
	tr := transcript.New("s1")
	tr.Append(transcript.NewUserMessage("question"))

	msg := m.exportTranscript(tr, "docx")()
	done, ok := msg.(ExportDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want ExportDoneMsg", msg)
	}
	if done.Err == nil {
		t.Fatal("unknown format should fail")
	}
	if apperrors.GetKind(done.Err) != apperrors.KindIO {
		t.Errorf("error kind = %v, want KindIO", apperrors.GetKind(done.Err))
	}
}

func TestModalSubmit_RenameValidation(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})

	state := ui.NewRenameChatState("s1", "alpha")
	state.Input.SetValue("   ")
	m.modal.Show(state)

	m.handleModalSubmit()
	if m.modal.GetError() == "" {
		t.Error("Empty name should set a modal error")
	}
	if !m.modal.IsVisible() {
		t.Error("Modal should stay open on validation error")
	}
}

func TestModalSubmit_NewProjectValidation(t *testing.T) {
	m := newTestModel()

	m.modal.Show(ui.NewNewProjectState())
	m.handleModalSubmit()

	if m.modal.GetError() == "" {
		t.Error("Empty project name should set a modal error")
	}
	if !m.modal.IsVisible() {
		t.Error("Modal should stay open on validation error")
	}
}

func TestFocusToggle(t *testing.T) {
	m := newTestModel()
	m.handleChatsLoaded(ChatsLoadedMsg{View: testRegistryView()})
	m.openChat("s1")

	if m.focus != FocusChat {
		t.Fatal("Opening a chat should focus the chat panel")
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != FocusSidebar {
		t.Error("Tab should move focus to the sidebar")
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != FocusChat {
		t.Error("Tab should move focus back to the chat panel")
	}
}
