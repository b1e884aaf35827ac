package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
	"github.com/pdfqa/tui/internal/api"
	"github.com/pdfqa/tui/internal/ui"
	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
)

// User-facing notice texts.
const (
	MsgNotPDF          = "Please select a PDF file"
	MsgUploadSucceeded = "File uploaded successfully!"
	MsgUploadFailed    = "Error uploading file. Please try again."
	MsgAskFailed       = "Error processing question. Please try again."
)

// createdDateLayout matches the ISO-8601 form used for locally created
// questions, e.g. 2025-03-14T09:26:53.123Z.
const createdDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Backend is the external PDF Q&A service. *api.Client implements it.
type Backend interface {
	ListDocuments(ctx context.Context) ([]api.Document, error)
	ListQuestions(ctx context.Context, documentID int64) ([]api.Question, error)
	Upload(ctx context.Context, path string, progress api.ProgressFunc) (api.UploadResponse, error)
	Ask(ctx context.Context, documentID int64, question string) (api.AskResponse, error)
}

// PanelFocus tracks which panel has keyboard focus.
type PanelFocus int

const (
	FocusDocuments PanelFocus = iota
	FocusQuestion
)

// NoticeLevel classifies a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Notice is a blocking message that must be dismissed before other input is
// accepted.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Options configures a Model.
type Options struct {
	Backend Backend
	Logger  *zap.Logger
	BaseURL string           // shown in the header
	Now     func() time.Time // defaults to time.Now
}

// Model is the root bubbletea model and the only owner of session state.
type Model struct {
	backend Backend
	log     *zap.Logger
	now     func() time.Time
	baseURL string
	keys    KeyMap

	// Documents
	documents []api.Document
	cursor    int
	selected  *api.Document

	// Transcript for the selected document
	questions        []api.Question
	transcriptScroll int // lines scrolled up from the bottom

	// Question draft
	draft  textarea.Model
	asking bool

	// Upload
	pathInput      textinput.Model
	promptUpload   bool
	uploading      bool
	uploadProgress int
	uploadName     string
	uploadSize     int64

	// Widgets
	spinner  spinner.Model
	bar      progress.Model
	renderer *glamour.TermRenderer

	// UI state
	notice       *Notice
	focusedPanel PanelFocus
	width        int
	height       int
}

// New creates a Model with default state.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	keys := DefaultKeyMap()

	draft := textarea.New()
	draft.Placeholder = "Ask a question about this document..."
	draft.ShowLineNumbers = false
	draft.CharLimit = 0
	draft.SetHeight(3)
	draft.KeyMap.InsertNewline = keys.Newline
	draft.Cursor.SetMode(cursor.CursorStatic)

	path := textinput.New()
	path.Prompt = "PDF file: "
	path.Placeholder = "path/to/document.pdf"
	path.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SpinnerStyle

	return Model{
		backend:      opts.Backend,
		log:          opts.Logger,
		now:          opts.Now,
		baseURL:      opts.BaseURL,
		keys:         keys,
		draft:        draft,
		pathInput:    path,
		spinner:      sp,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		renderer:     newRenderer(60),
		focusedPanel: FocusDocuments,
	}
}

// Init loads the document list.
func (m Model) Init() tea.Cmd {
	return loadDocumentsCmd(m.backend)
}

// loadDocumentsCmd fetches the document list.
func loadDocumentsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		docs, err := b.ListDocuments(context.Background())
		return DocumentsLoadedMsg{Documents: docs, Err: err}
	}
}

// loadQuestionsCmd fetches the question history for a document.
func loadQuestionsCmd(b Backend, documentID int64) tea.Cmd {
	return func() tea.Msg {
		qs, err := b.ListQuestions(context.Background(), documentID)
		return QuestionsLoadedMsg{DocumentID: documentID, Questions: qs, Err: err}
	}
}

// uploadCmd runs the upload, pushing progress into ch and closing it when the
// request settles.
func uploadCmd(b Backend, path string, ch chan<- int) tea.Cmd {
	return func() tea.Msg {
		defer close(ch)
		_, err := b.Upload(context.Background(), path, func(p int) { ch <- p })
		return UploadFinishedMsg{Path: path, Err: err}
	}
}

// waitUploadProgressCmd reads the next progress value from an upload.
func waitUploadProgressCmd(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return UploadProgressMsg{Percent: p, ch: ch}
	}
}

// askCmd submits a question.
func askCmd(b Backend, documentID int64, question string) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.Ask(context.Background(), documentID, question)
		return AskAnsweredMsg{DocumentID: documentID, Question: question, Answer: resp.Answer, Err: err}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.draft.SetWidth(max(10, m.conversationPanelWidth()-4))
		m.pathInput.Width = max(10, m.width-20)
		m.renderer = newRenderer(max(20, m.conversationPanelWidth()-4))
		return m, nil

	case DocumentsLoadedMsg:
		if msg.Err != nil {
			m.log.Error("fetch documents", zap.Error(msg.Err))
			return m, nil
		}
		m.documents = msg.Documents
		if m.cursor >= len(m.documents) {
			m.cursor = max(0, len(m.documents)-1)
		}
		m.log.Debug("documents loaded", zap.Int("count", len(m.documents)))
		return m, nil

	case QuestionsLoadedMsg:
		if msg.Err != nil {
			m.log.Error("fetch questions", zap.Int64("document_id", msg.DocumentID), zap.Error(msg.Err))
			return m, nil
		}
		if m.selected == nil || m.selected.ID != msg.DocumentID {
			m.log.Debug("dropping stale history", zap.Int64("document_id", msg.DocumentID))
			return m, nil
		}
		m.questions = msg.Questions
		m.transcriptScroll = 0
		return m, nil

	case UploadProgressMsg:
		if m.uploading {
			m.uploadProgress = msg.Percent
		}
		return m, waitUploadProgressCmd(msg.ch)

	case UploadFinishedMsg:
		m.uploading = false
		m.uploadProgress = 0
		if msg.Err != nil {
			m.log.Error("upload document", zap.String("path", msg.Path), zap.Error(msg.Err))
			m.notice = &Notice{Level: NoticeError, Text: MsgUploadFailed}
			return m, nil
		}
		m.log.Info("document uploaded", zap.String("path", msg.Path))
		m.notice = &Notice{Level: NoticeInfo, Text: MsgUploadSucceeded}
		m.pathInput.Reset()
		return m, loadDocumentsCmd(m.backend)

	case AskAnsweredMsg:
		m.asking = false
		if msg.Err != nil {
			m.log.Error("ask question", zap.Int64("document_id", msg.DocumentID), zap.Error(msg.Err))
			m.notice = &Notice{Level: NoticeError, Text: MsgAskFailed}
			return m, nil
		}
		m.log.Info("question answered", zap.Int64("document_id", msg.DocumentID))
		if m.selected == nil || m.selected.ID != msg.DocumentID {
			// The backend kept it; it shows up when that document is reopened.
			return m, nil
		}
		now := m.now()
		m.questions = append(m.questions, api.Question{
			ID:          now.UnixMilli(),
			Question:    msg.Question,
			Answer:      msg.Answer,
			CreatedDate: now.UTC().Format(createdDateLayout),
		})
		m.transcriptScroll = 0
		m.draft.Reset()
		return m, nil

	case spinner.TickMsg:
		if !m.uploading && !m.asking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.notice != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notice = nil
		}
		return m, nil
	}

	if m.promptUpload {
		return m.handleUploadPromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.focusedPanel == FocusDocuments {
			m.focusQuestion()
		} else {
			m.focusDocuments()
		}
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		if m.uploading {
			return m, nil
		}
		m.promptUpload = true
		m.draft.Blur()
		cmd := m.pathInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		m.log.Debug("refresh documents")
		return m, loadDocumentsCmd(m.backend)
	}

	if m.focusedPanel == FocusDocuments {
		return m.handleDocumentsKey(msg)
	}
	return m.handleQuestionKey(msg)
}

func (m Model) handleDocumentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.documents)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.documents) {
			return m.SelectDocument(m.documents[m.cursor])
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		// Enter never reaches the textarea, so no newline is inserted.
		return m.AskQuestion()

	case key.Matches(msg, m.keys.ScrollUp):
		m.transcriptScroll += max(1, m.transcriptHeight()/2)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.transcriptScroll = max(0, m.transcriptScroll-max(1, m.transcriptHeight()/2))
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.focusDocuments()
		return m, nil
	}

	if m.asking || m.selected == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	return m, cmd
}

func (m Model) handleUploadPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.promptUpload = false
		m.pathInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.promptUpload = false
		m.pathInput.Blur()
		if m.focusedPanel == FocusQuestion {
			m.focusQuestion()
		}
		return m.UploadDocument(m.pathInput.Value())
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) focusDocuments() {
	m.focusedPanel = FocusDocuments
	m.draft.Blur()
}

func (m *Model) focusQuestion() {
	m.focusedPanel = FocusQuestion
	m.draft.Focus()
}

// SelectDocument makes doc the selected document, clears the draft and
// reloads its history. Reselecting the current document reloads as well.
func (m Model) SelectDocument(doc api.Document) (Model, tea.Cmd) {
	d := doc
	m.selected = &d
	m.draft.Reset()
	m.transcriptScroll = 0
	m.focusQuestion()
	m.log.Debug("select document", zap.Int64("document_id", doc.ID), zap.String("filename", doc.Filename))
	return m, loadQuestionsCmd(m.backend, doc.ID)
}

// AskQuestion submits the draft for the selected document. It does nothing if
// the draft is blank, no document is selected, or an ask is already running.
func (m Model) AskQuestion() (Model, tea.Cmd) {
	text := m.draft.Value()
	if m.asking || strings.TrimSpace(text) == "" || m.selected == nil {
		return m, nil
	}
	m.asking = true
	m.log.Debug("ask", zap.Int64("document_id", m.selected.ID), zap.Int("length", len(text)))
	return m, tea.Batch(askCmd(m.backend, m.selected.ID, text), m.spinner.Tick)
}

// UploadDocument uploads the PDF at path. A blank path does nothing and a
// non-PDF name is rejected with a warning before any request is made.
func (m Model) UploadDocument(path string) (Model, tea.Cmd) {
	path = strings.TrimSpace(path)
	if m.uploading || path == "" {
		return m, nil
	}
	if !IsPDF(path) {
		m.notice = &Notice{Level: NoticeWarn, Text: MsgNotPDF}
		return m, nil
	}

	m.uploading = true
	m.uploadProgress = 0
	m.uploadName = filepath.Base(path)
	m.uploadSize = 0
	if fi, err := os.Stat(path); err == nil {
		m.uploadSize = fi.Size()
	}

	m.log.Debug("upload", zap.String("path", path), zap.Int64("size", m.uploadSize))
	ch := make(chan int)
	return m, tea.Batch(
		uploadCmd(m.backend, path, ch),
		waitUploadProgressCmd(ch),
		m.spinner.Tick,
	)
}

// IsPDF reports whether name ends in .pdf, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
