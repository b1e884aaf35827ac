// Package api provides the HTTP client and wire types for the PDF Q&A backend.
package api

// Document is a backend-tracked PDF upload.
type Document struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	UploadDate string `json:"upload_date"`
	TextLength int    `json:"text_length"`
}

// Question is one question-and-answer pair for a document.
type Question struct {
	ID          int64  `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	CreatedDate string `json:"created_date"`
}

// AskResponse is returned by POST /ask. Only Answer is used by the client.
type AskResponse struct {
	Question         string `json:"question,omitempty"`
	Answer           string `json:"answer"`
	DocumentFilename string `json:"document_filename,omitempty"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Message    string `json:"message,omitempty"`
	DocumentID int64  `json:"document_id,omitempty"`
	Filename   string `json:"filename,omitempty"`
	TextLength int    `json:"text_length,omitempty"`
}

// errorBody is the backend's error envelope, e.g. {"detail":"Document not found"}.
type errorBody struct {
	Detail string `json:"detail"`
}

// Form field names shared with the backend.
const (
	FieldFile       = "file"
	FieldDocumentID = "document_id"
	FieldQuestion   = "question"
)
