package fakebackend

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pdfqa/tui/internal/api"

	_ "modernc.org/sqlite"
)

// timeLayout matches the naive ISO timestamps the real backend emits.
const timeLayout = "2006-01-02T15:04:05.000000"

const schema = `
	CREATE TABLE documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		originalFilename TEXT NOT NULL,
		uploadDate TEXT NOT NULL,
		textLength INTEGER NOT NULL
	);

	CREATE TABLE questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		documentId INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		questionText TEXT NOT NULL,
		answerText TEXT NOT NULL,
		createdDate TEXT NOT NULL
	);
`

// Store keeps documents and questions in a private in-memory SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenStore creates an empty in-memory store with the backend schema.
func OpenStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddDocument records an uploaded document and returns it as clients see it.
func (s *Store) AddDocument(storedName, originalName string, textLength int) (api.Document, error) {
	uploaded := s.now().UTC().Format(timeLayout)
	res, err := s.db.Exec(`
		INSERT INTO documents (filename, originalFilename, uploadDate, textLength)
		VALUES (?, ?, ?, ?)
	`, storedName, originalName, uploaded, textLength)
	if err != nil {
		return api.Document{}, fmt.Errorf("insert document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return api.Document{}, fmt.Errorf("document id: %w", err)
	}
	return api.Document{
		ID:         id,
		Filename:   originalName,
		UploadDate: uploaded,
		TextLength: textLength,
	}, nil
}

// Documents returns all documents in insertion order.
func (s *Store) Documents() ([]api.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, originalFilename, uploadDate, textLength
		FROM documents
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []api.Document{}
	for rows.Next() {
		var d api.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.UploadDate, &d.TextLength); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Document returns a single document, or nil if it does not exist.
func (s *Store) Document(id int64) (*api.Document, error) {
	row := s.db.QueryRow(`
		SELECT id, originalFilename, uploadDate, textLength
		FROM documents
		WHERE id = ?
	`, id)

	var d api.Document
	if err := row.Scan(&d.ID, &d.Filename, &d.UploadDate, &d.TextLength); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// AddQuestion records an answered question for a document.
func (s *Store) AddQuestion(documentID int64, question, answer string) (api.Question, error) {
	created := s.now().UTC().Format(timeLayout)
	res, err := s.db.Exec(`
		INSERT INTO questions (documentId, questionText, answerText, createdDate)
		VALUES (?, ?, ?, ?)
	`, documentID, question, answer, created)
	if err != nil {
		return api.Question{}, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return api.Question{}, fmt.Errorf("question id: %w", err)
	}
	return api.Question{ID: id, Question: question, Answer: answer, CreatedDate: created}, nil
}

// QuestionsForDocument returns a document's questions in the order they were asked.
func (s *Store) QuestionsForDocument(documentID int64) ([]api.Question, error) {
	rows, err := s.db.Query(`
		SELECT id, questionText, answerText, createdDate
		FROM questions
		WHERE documentId = ?
		ORDER BY id ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	qs := []api.Question{}
	for rows.Next() {
		var q api.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}
