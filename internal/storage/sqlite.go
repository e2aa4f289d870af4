// Package storage provides a SQLite-backed question bank for quizzes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory bank.
const MemoryPath = ":memory:"

//go:embed defaults/questions.yaml
var defaultQuestions []byte

// ErrNoQuestions is returned when the bank holds nothing of the requested kind.
var ErrNoQuestions = errors.New("storage: no questions")

// Kinds lists the question kinds kept in the bank.
var Kinds = []string{"picture", "trivia", "riddle"}

// ValidKind reports whether kind can be stored in the bank.
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Bank manages the SQLite database holding quiz questions.
// Safe for concurrent reads; sessions over SSH share one bank.
type Bank struct {
	db *sql.DB
}

// Question is a stored multiple-choice question.
type Question struct {
	ID        int64
	Kind      string
	Prompt    string
	Art       string
	Choices   []string
	Answer    int
	CreatedAt time.Time
}

// Validate checks that the question can be asked.
func (q Question) Validate() error {
	if !ValidKind(q.Kind) {
		return fmt.Errorf("storage: unknown question kind %q", q.Kind)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("storage: question prompt is empty")
	}
	if len(q.Choices) < 2 || len(q.Choices) > 4 {
		return fmt.Errorf("storage: question %q needs 2-4 choices, has %d", q.Prompt, len(q.Choices))
	}
	if q.Answer < 0 || q.Answer >= len(q.Choices) {
		return fmt.Errorf("storage: question %q answer %d out of range", q.Prompt, q.Answer)
	}
	return nil
}

// Open creates or opens a question bank at the given path.
// An empty path or MemoryPath opens an in-memory bank.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Bank, error) {
	memory := dbPath == "" || dbPath == MemoryPath
	if memory {
		dbPath = MemoryPath
	} else {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	bank := &Bank{db: db}

	if err := bank.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return bank, nil
}

// migrate creates the database schema if it doesn't exist.
func (b *Bank) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			prompt TEXT NOT NULL,
			art TEXT NOT NULL DEFAULT '',
			answer INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(kind, prompt, art)
		);
		CREATE INDEX IF NOT EXISTS idx_questions_kind ON questions(kind);

		CREATE TABLE IF NOT EXISTS question_choices (
			question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (question_id, position)
		);
	`

	_, err := b.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (b *Bank) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Add stores a question. Returns the new ID, or 0 with no error when an
// identical question already exists.
func (b *Bank) Add(ctx context.Context, q Question) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := insertQuestion(ctx, tx, q)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit question: %w", err)
	}
	return id, nil
}

func insertQuestion(ctx context.Context, tx *sql.Tx, q Question) (int64, error) {
	result, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO questions (kind, prompt, art, answer) VALUES (?, ?, ?, ?)",
		q.Kind, q.Prompt, q.Art, q.Answer,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save question: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if affected == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, text := range q.Choices {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO question_choices (question_id, position, text) VALUES (?, ?, ?)",
			id, i, text,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save choice: %w", err)
		}
	}
	return id, nil
}

// Random returns a random question of the given kind.
func (b *Bank) Random(ctx context.Context, kind string) (Question, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT id, kind, prompt, art, answer, created_at
		 FROM questions
		 WHERE kind = ?
		 ORDER BY RANDOM()
		 LIMIT 1`,
		kind,
	)

	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, fmt.Errorf("%w of kind %q", ErrNoQuestions, kind)
	}
	if err != nil {
		return Question{}, fmt.Errorf("storage: cannot query question: %w", err)
	}

	if q.Choices, err = b.choices(ctx, q.ID); err != nil {
		return Question{}, err
	}
	return q, nil
}

// List returns every question of kind, or all questions when kind is empty.
// Results are ordered by kind, then ID.
func (b *Bank) List(ctx context.Context, kind string) ([]Question, error) {
	query := `SELECT id, kind, prompt, art, answer, created_at FROM questions`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY kind, id`

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range questions {
		if questions[i].Choices, err = b.choices(ctx, questions[i].ID); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// Count returns the number of questions of kind, or of all kinds when kind
// is empty.
func (b *Bank) Count(ctx context.Context, kind string) (int, error) {
	query := "SELECT COUNT(*) FROM questions"
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}

	var n int
	if err := b.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count questions: %w", err)
	}
	return n, nil
}

// choices loads the ordered choices of a question.
func (b *Bank) choices(ctx context.Context, id int64) ([]string, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT text FROM question_choices WHERE question_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query choices: %w", err)
	}
	defer rows.Close()

	var choices []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("storage: cannot scan choice: %w", err)
		}
		choices = append(choices, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return choices, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var createdAt any
	if err := row.Scan(&q.ID, &q.Kind, &q.Prompt, &q.Art, &q.Answer, &createdAt); err != nil {
		return Question{}, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		q.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			q.CreatedAt = parsed
		}
	}
	return q, nil
}

// questionFile is the YAML layout of seed and import files.
type questionFile struct {
	Questions []struct {
		Kind    string   `yaml:"kind"`
		Prompt  string   `yaml:"prompt"`
		Art     string   `yaml:"art"`
		Choices []string `yaml:"choices"`
		Answer  int      `yaml:"answer"`
	} `yaml:"questions"`
}

// ImportYAML stores every question in a YAML document. The whole document
// is rejected if any question is invalid. Returns the number of new
// questions; duplicates are skipped.
func (b *Bank) ImportYAML(ctx context.Context, data []byte) (int, error) {
	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("storage: cannot parse questions: %w", err)
	}

	questions := make([]Question, 0, len(file.Questions))
	for i, raw := range file.Questions {
		q := Question{
			Kind:    strings.ToLower(strings.TrimSpace(raw.Kind)),
			Prompt:  strings.TrimSpace(raw.Prompt),
			Art:     strings.TrimRight(raw.Art, "\n"),
			Choices: raw.Choices,
			Answer:  raw.Answer,
		}
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("storage: question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, q := range questions {
		id, err := insertQuestion(ctx, tx, q)
		if err != nil {
			return 0, err
		}
		if id != 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return added, nil
}

// ImportFile stores every question in the YAML file at path.
func (b *Bank) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", path, err)
	}
	return b.ImportYAML(ctx, data)
}

// Seed loads the built-in questions into an empty bank.
func (b *Bank) Seed(ctx context.Context) error {
	n, err := b.Count(ctx, "")
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := b.ImportYAML(ctx, defaultQuestions); err != nil {
		return fmt.Errorf("storage: cannot seed defaults: %w", err)
	}
	return nil
}

// DefaultQuestionsYAML returns the built-in question file.
func DefaultQuestionsYAML() []byte {
	return defaultQuestions
}
