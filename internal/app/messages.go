package app

import "github.com/pdfqa/tui/internal/api"

// DocumentsLoadedMsg carries the result of GET /documents.
type DocumentsLoadedMsg struct {
	Documents []api.Document
	Err       error
}

// QuestionsLoadedMsg carries the question history fetched for one document.
type QuestionsLoadedMsg struct {
	DocumentID int64
	Questions  []api.Question
	Err        error
}

// UploadProgressMsg reports upload progress as a percentage. The channel is
// read again after each message until the upload closes it.
type UploadProgressMsg struct {
	Percent int
	ch      <-chan int
}

// UploadFinishedMsg is sent once an upload settles.
type UploadFinishedMsg struct {
	Path string
	Err  error
}

// AskAnsweredMsg is sent once an ask settles.
type AskAnsweredMsg struct {
	DocumentID int64
	Question   string
	Answer     string
	Err        error
}
