package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBankOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "questions.db")

	bank, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestBankSeed(t *testing.T) {
	ctx := context.Background()
	bank, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	if err := bank.Seed(ctx); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	for _, kind := range Kinds {
		n, err := bank.Count(ctx, kind)
		if err != nil {
			t.Fatalf("Count(%q) failed: %v", kind, err)
		}
		if n == 0 {
			t.Errorf("Expected seeded %s questions, got none", kind)
		}
	}

	// Seeding twice must not duplicate
	total, _ := bank.Count(ctx, "")
	if err := bank.Seed(ctx); err != nil {
		t.Fatalf("second Seed() failed: %v", err)
	}
	again, _ := bank.Count(ctx, "")
	if again != total {
		t.Errorf("Seed() twice changed count from %d to %d", total, again)
	}
}

func TestBankAddAndRandom(t *testing.T) {
	ctx := context.Background()
	bank, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	q := Question{
		Kind:    "trivia",
		Prompt:  "What color is coral?",
		Choices: []string{"Blue", "Many colors", "Black", "Clear"},
		Answer:  1,
	}
	id, err := bank.Add(ctx, q)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Add() returned zero ID for a new question")
	}

	// Duplicate is ignored
	dup, err := bank.Add(ctx, q)
	if err != nil {
		t.Fatalf("Add() duplicate failed: %v", err)
	}
	if dup != 0 {
		t.Errorf("Add() duplicate returned ID %d, expected 0", dup)
	}

	got, err := bank.Random(ctx, "trivia")
	if err != nil {
		t.Fatalf("Random() failed: %v", err)
	}
	if got.Prompt != q.Prompt {
		t.Errorf("Prompt = %q, expected %q", got.Prompt, q.Prompt)
	}
	if len(got.Choices) != 4 || got.Choices[1] != "Many colors" {
		t.Errorf("Choices = %v, expected original order", got.Choices)
	}
	if got.Answer != 1 {
		t.Errorf("Answer = %d, expected 1", got.Answer)
	}

	if _, err := bank.Random(ctx, "riddle"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Random() on empty kind error = %v, expected ErrNoQuestions", err)
	}
}

func TestBankImportYAML(t *testing.T) {
	ctx := context.Background()
	bank, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	data := []byte(`questions:
  - kind: Riddle
    prompt: "What has eight legs and ink?"
    choices: ["Octopus", "Crab"]
    answer: 0
  - kind: picture
    prompt: "Count the fish"
    art: |
      ><> ><>
    choices: ["1", "2", "3"]
    answer: 1
`)
	added, err := bank.ImportYAML(ctx, data)
	if err != nil {
		t.Fatalf("ImportYAML() failed: %v", err)
	}
	if added != 2 {
		t.Errorf("ImportYAML() added %d, expected 2", added)
	}

	list, err := bank.List(ctx, "picture")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 1 || list[0].Art != "><> ><>" {
		t.Errorf("List(picture) = %+v, expected one question with art", list)
	}

	// Re-import skips duplicates
	added, err = bank.ImportYAML(ctx, data)
	if err != nil {
		t.Fatalf("second ImportYAML() failed: %v", err)
	}
	if added != 0 {
		t.Errorf("second ImportYAML() added %d, expected 0", added)
	}
}

func TestBankImportRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	bank, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", "questions:\n  - {kind: math, prompt: x, choices: [a, b], answer: 0}\n"},
		{"answer out of range", "questions:\n  - {kind: trivia, prompt: x, choices: [a, b], answer: 2}\n"},
		{"too few choices", "questions:\n  - {kind: trivia, prompt: x, choices: [a], answer: 0}\n"},
		{"empty prompt", "questions:\n  - {kind: trivia, prompt: '', choices: [a, b], answer: 0}\n"},
		{"bad yaml", "questions: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := bank.ImportYAML(ctx, []byte(tc.data)); err == nil {
				t.Error("ImportYAML() should fail")
			}
		})
	}

	if n, _ := bank.Count(ctx, ""); n != 0 {
		t.Errorf("Count() after rejected imports = %d, expected 0", n)
	}
}

func TestBankImportFile(t *testing.T) {
	ctx := context.Background()
	bank, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer bank.Close()

	path := filepath.Join(t.TempDir(), "extra.yaml")
	if err := os.WriteFile(path, DefaultQuestionsYAML(), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	added, err := bank.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFile() failed: %v", err)
	}
	if added == 0 {
		t.Error("ImportFile() added nothing")
	}

	if _, err := bank.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ImportFile() of missing file should fail")
	}
}
