// Package fakebackend is an in-process stand-in for the PDF Q&A backend. It
// serves the same four routes over an in-memory SQLite store so the client can
// be exercised end to end without the real service.
package fakebackend

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pdfqa/tui/internal/api"
)

// Route patterns, usable with FailNext.
const (
	RouteDocuments = "/documents"
	RouteQuestions = "/documents/:id/questions"
	RouteUpload    = "/upload"
	RouteAsk       = "/ask"
)

// NoAnswer is what DefaultAnswerer replies with.
const NoAnswer = "I couldn't find specific information to answer your question in the document."

// Answerer produces an answer for a question about a document.
type Answerer func(doc api.Document, question string) string

// DefaultAnswerer always answers NoAnswer.
func DefaultAnswerer(api.Document, string) string { return NoAnswer }

// Server is the fake backend.
type Server struct {
	store  *Store
	echo   *echo.Echo
	answer Answerer

	mu       sync.Mutex
	failures map[string]int
	uploads  int
	asks     int
}

// Option configures a Server.
type Option func(*Server)

// WithAnswerer sets the function used to answer /ask.
func WithAnswerer(a Answerer) Option {
	return func(s *Server) { s.answer = a }
}

// New creates a Server with an empty store.
func New(opts ...Option) (*Server, error) {
	store, err := OpenStore()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    store,
		answer:   DefaultAnswerer,
		failures: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(s.injectFailures)

	e.GET(RouteDocuments, s.handleDocuments)
	e.GET(RouteQuestions, s.handleQuestions)
	e.POST(RouteUpload, s.handleUpload)
	e.POST(RouteAsk, s.handleAsk)

	s.echo = e
	return s, nil
}

// Handler returns the HTTP handler serving the backend routes.
func (s *Server) Handler() http.Handler { return s.echo }

// Store exposes the backing store for seeding and inspection.
func (s *Server) Store() *Store { return s.store }

// Start serves on addr until the listener fails.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

// Close releases the store.
func (s *Server) Close() error { return s.store.Close() }

// FailNext makes the next request to route answer with status.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Uploads returns how many upload requests reached the handler.
func (s *Server) Uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

// Asks returns how many ask requests reached the handler.
func (s *Server) Asks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asks
}

func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		status, ok := s.failures[c.Path()]
		if ok {
			delete(s.failures, c.Path())
		}
		s.mu.Unlock()
		if ok {
			return echo.NewHTTPError(status, "injected failure")
		}
		return next(c)
	}
}

func (s *Server) handleDocuments(c echo.Context) error {
	docs, err := s.store.Documents()
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (s *Server) handleQuestions(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "document_id must be an integer")
	}
	qs, err := s.store.QuestionsForDocument(id)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, qs)
}

func (s *Server) handleUpload(c echo.Context) error {
	s.mu.Lock()
	s.uploads++
	s.mu.Unlock()

	file, err := c.FormFile(api.FieldFile)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only PDF files are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return internalError(err)
	}
	defer src.Close()

	n, err := io.Copy(io.Discard, src)
	if err != nil {
		return internalError(err)
	}

	stored := uuid.NewString() + "_" + file.Filename
	doc, err := s.store.AddDocument(stored, file.Filename, int(n))
	if err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, api.UploadResponse{
		Message:    "File uploaded successfully",
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		TextLength: doc.TextLength,
	})
}

func (s *Server) handleAsk(c echo.Context) error {
	s.mu.Lock()
	s.asks++
	s.mu.Unlock()

	id, err := strconv.ParseInt(c.FormValue(api.FieldDocumentID), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "document_id must be an integer")
	}
	question := c.FormValue(api.FieldQuestion)
	if question == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "question is required")
	}

	doc, err := s.store.Document(id)
	if err != nil {
		return internalError(err)
	}
	if doc == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}

	answer := s.answer(*doc, question)
	if _, err := s.store.AddQuestion(doc.ID, question, answer); err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, api.AskResponse{
		Question:         question,
		Answer:           answer,
		DocumentFilename: doc.Filename,
	})
}

func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error processing request: %v", err))
}

// errorHandler writes errors in the backend's {"detail": ...} envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		detail = fmt.Sprintf("%v", he.Message)
	}

	c.JSON(status, map[string]string{"detail": detail})
}
