package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdfqa/tui/internal/api"
	"github.com/pdfqa/tui/internal/ui"
)

// draftHeight is the number of rows the question box and its title take.
const draftHeight = 4

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// header(1) + status(1) + divider(2) + bordered notice(3) + footer(1)
	reserved := 8
	return max(8, m.height-reserved)
}

// transcriptHeight is the number of conversation lines visible above the
// question box.
func (m Model) transcriptHeight() int {
	return max(3, m.contentHeight()-1-draftHeight)
}

func (m Model) documentPanelWidth() int {
	if m.width == 0 {
		return 30
	}
	return max(24, m.width*30/100)
}

func (m Model) conversationPanelWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.documentPanelWidth()-3)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderStatusBar(),
		ui.DividerStyle.Render(strings.Repeat("─", m.width)),
		m.renderMainContent(),
		ui.DividerStyle.Render(strings.Repeat("─", m.width)),
	}

	switch {
	case m.notice != nil:
		sections = append(sections, m.renderNotice())
	case m.promptUpload:
		sections = append(sections, m.pathInput.View())
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("PDF Q&A")
	if m.baseURL == "" {
		return title
	}
	return title + ui.SubtitleStyle.Render(" "+m.baseURL)
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.uploading {
		pct := m.uploadProgress
		status := fmt.Sprintf("%s Uploading %s", m.spinner.View(), m.uploadName)
		if m.uploadSize > 0 {
			status += ui.DimStyle.Render(" (" + ui.FileSize(m.uploadSize) + ")")
		}
		parts = append(parts, ui.BusyStyle.Render(status)+" "+m.bar.ViewAs(float64(pct)/100)+fmt.Sprintf(" %d%%", pct))
	}
	if m.asking {
		parts = append(parts, ui.BusyStyle.Render(m.spinner.View()+" Processing question..."))
	}
	if len(parts) == 0 {
		if m.selected != nil {
			return ui.DimStyle.Render("Document: ") + m.selected.Filename
		}
		return ui.DimStyle.Render("Select a document to ask questions")
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderMainContent() string {
	docW := m.documentPanelWidth()
	convW := m.conversationPanelWidth()
	h := m.contentHeight()

	docLines := strings.Split(m.renderDocumentPanel(docW, h), "\n")
	convLines := strings.Split(m.renderConversationPanel(convW, h), "\n")

	divider := ui.DividerStyle.Render("│")
	rows := make([]string, 0, h)
	for i := 0; i < h; i++ {
		left := strings.Repeat(" ", docW)
		if i < len(docLines) {
			left = docLines[i]
		}
		right := ""
		if i < len(convLines) {
			right = convLines[i]
		}
		rows = append(rows, left+divider+right)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderDocumentPanel(width, height int) string {
	title := fmt.Sprintf("DOCUMENTS (%d)", len(m.documents))
	var header string
	if m.focusedPanel == FocusDocuments && !m.promptUpload {
		header = ui.PanelTitleActiveStyle.Render(title)
	} else {
		header = ui.PanelTitleStyle.Render(title)
	}

	lines := []string{header}
	if len(m.documents) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No documents yet"))
		lines = append(lines, ui.DimStyle.Render("  Press ^U to upload a PDF"))
	}

	// Each document takes two rows: name and metadata.
	visible := max(1, (height-1)/2)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.documents) && i < start+visible; i++ {
		lines = append(lines, m.renderDocumentRow(m.documents[i], i, width)...)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDocumentRow(doc api.Document, i, width int) []string {
	marker := "  "
	if m.selected != nil && m.selected.ID == doc.ID {
		marker = ui.CursorStyle.Render("• ")
	}

	name := truncateToWidth(doc.Filename, width-4)
	if i == m.cursor && m.focusedPanel == FocusDocuments {
		name = ui.SelectedStyle.Render("> " + name)
	} else {
		name = "  " + name
	}

	meta := ui.DimStyle.Render("    " + ui.DocumentDate(doc.UploadDate) + " · " + ui.CharCount(doc.TextLength))
	return []string{marker + name, meta}
}

func (m Model) renderConversationPanel(width, height int) string {
	var header string
	if m.focusedPanel == FocusQuestion && !m.promptUpload {
		header = ui.PanelTitleActiveStyle.Render("CONVERSATION")
	} else {
		header = ui.PanelTitleStyle.Render("CONVERSATION")
	}

	lines := []string{header}
	th := m.transcriptHeight()

	var body []string
	switch {
	case m.selected == nil:
		body = []string{"", ui.DimStyle.Render("  No Document Selected"), ui.DimStyle.Render("  Pick one from the list to start asking")}
	case len(m.questions) == 0:
		body = []string{"", ui.DimStyle.Render("  No questions yet. Ask something below.")}
	default:
		body = m.transcriptLines(width - 2)
	}

	// Bottom-anchored, scrolled up by transcriptScroll.
	end := len(body) - m.transcriptScroll
	if end > len(body) {
		end = len(body)
	}
	if end < min(th, len(body)) {
		end = min(th, len(body))
	}
	start := max(0, end-th)
	for _, l := range body[start:end] {
		lines = append(lines, "  "+l)
	}
	for len(lines) < 1+th {
		lines = append(lines, "")
	}

	lines = append(lines, ui.DimStyle.Render(" Question"))
	if m.selected != nil {
		lines = append(lines, strings.Split(m.draft.View(), "\n")...)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// transcriptLines renders every question and answer of the selected document.
func (m Model) transcriptLines(width int) []string {
	var out []string
	for i, q := range m.questions {
		if i > 0 {
			out = append(out, "")
		}
		ts := ""
		if t, ok := ui.ParseTimestamp(q.CreatedDate); ok {
			ts = ui.TimestampStyle.Render(t.Local().Format("[Jan 2 15:04] "))
		}
		qLines := wrapText(q.Question, max(10, width-16))
		out = append(out, ts+ui.QuestionStyle.Render("Q: "+qLines[0]))
		for _, l := range qLines[1:] {
			out = append(out, ui.QuestionStyle.Render("   "+l))
		}
		out = append(out, m.renderAnswer(q.Answer, width)...)
	}
	return out
}

// renderAnswer renders an answer as markdown, falling back to plain wrapped
// text if glamour is unavailable.
func (m Model) renderAnswer(answer string, width int) []string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(answer); err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}
	return wrapText(answer, max(10, width))
}

func (m Model) renderNotice() string {
	var label string
	switch m.notice.Level {
	case NoticeInfo:
		label = ui.InfoStyle.Render("Info: ")
	case NoticeWarn:
		label = ui.WarnStyle.Render("Warning: ")
	default:
		label = ui.ErrorStyle.Render("Error: ")
	}
	hint := ui.DimStyle.Render("  (" + m.keys.Dismiss.Help().Key + " to dismiss)")
	return ui.NoticeBoxStyle.Render(label + m.notice.Text + hint)
}

func (m Model) renderFooter() string {
	var bindings []key.Binding
	switch {
	case m.notice != nil:
		bindings = []key.Binding{m.keys.Dismiss}
	case m.promptUpload:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Upload")),
			m.keys.Cancel,
		}
	case m.focusedPanel == FocusDocuments:
		bindings = []key.Binding{m.keys.Up, m.keys.Select, m.keys.Upload, m.keys.Refresh, m.keys.Focus, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Submit, m.keys.Newline, m.keys.ScrollUp, m.keys.Upload, m.keys.Focus, m.keys.ForceQuit}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, ui.FooterKeyStyle.Render(h.Key)+ui.FooterDescStyle.Render(" "+h.Desc))
	}
	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case current == "":
				current = word
			case len(current)+1+len(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
