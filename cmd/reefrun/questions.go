package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reef-runner/internal/platform/tui"
	"github.com/vovakirdan/reef-runner/internal/storage"
)

var flagKind string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the quiz question bank",
	Long: `Inspect and extend the question bank used for picture, trivia and
riddle quizzes. Math questions are generated and never stored.

The bank is in-memory by default; pass --questions to keep a file-backed
bank that imports persist into.

Examples:
  reefrun questions list --kind trivia
  reefrun questions import ./extra.yaml --questions ~/.reefrun/questions.db
  reefrun questions template > extra.yaml
  reefrun questions browse`,
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored questions",
	Args:  cobra.NoArgs,
	Run:   runQuestionsList,
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import questions from YAML files",
	Long: `Import questions from one or more YAML files shaped like:

  questions:
    - kind: trivia
      prompt: Who lives in a pineapple under the sea?
      choices: [SpongeBob, Patrick, Squidward]
      answer: 0

A file is imported all or nothing; duplicates are skipped.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuestionsImport,
}

var questionsTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the built-in question file as an import template",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(storage.DefaultQuestionsYAML())
	},
}

var questionsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the question bank interactively",
	Args:  cobra.NoArgs,
	Run:   runQuestionsBrowse,
}

func init() {
	questionsListCmd.Flags().StringVar(&flagKind, "kind", "", "Only this kind: "+strings.Join(storage.Kinds, ", "))

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsTemplateCmd)
	questionsCmd.AddCommand(questionsBrowseCmd)
}

func mustOpenBank(ctx context.Context) *storage.Bank {
	bank, err := openBank(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening question bank: %v\n", err)
		os.Exit(1)
	}
	return bank
}

func runQuestionsList(cmd *cobra.Command, _ []string) {
	if flagKind != "" && !storage.ValidKind(flagKind) {
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q (want %s)\n", flagKind, strings.Join(storage.Kinds, ", "))
		os.Exit(1)
	}

	ctx := cmd.Context()
	bank := mustOpenBank(ctx)
	defer bank.Close()

	questions, err := bank.List(ctx, flagKind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing questions: %v\n", err)
		os.Exit(1)
	}

	if len(questions) == 0 {
		fmt.Println("No questions stored.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "ID", "Kind", "Prompt")
	fmt.Printf("  %-4s  %-8s  %s\n", "--", "----", "------")
	for _, q := range questions {
		prompt := strings.ReplaceAll(q.Prompt, "\n", " ")
		fmt.Printf("  %-4d  %-8s  %s\n", q.ID, q.Kind, prompt)
		for i, c := range q.Choices {
			mark := " "
			if i == q.Answer {
				mark = "*"
			}
			fmt.Printf("  %-4s  %-8s  %s %d) %s\n", "", "", mark, i+1, c)
		}
	}
	fmt.Println()
	fmt.Printf("%d questions\n", len(questions))
}

func runQuestionsImport(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	bank := mustOpenBank(ctx)
	defer bank.Close()

	if flagQuestions == storage.MemoryPath || flagQuestions == "" {
		fmt.Fprintln(os.Stderr, "Warning: importing into an in-memory bank; pass --questions to keep the result")
	}

	total := 0
	for _, path := range args {
		n, err := bank.ImportFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d new questions\n", path, n)
		total += n
	}

	count, err := bank.Count(ctx, "")
	if err == nil {
		fmt.Printf("Imported %d questions, bank now holds %d\n", total, count)
	}
}

func runQuestionsBrowse(cmd *cobra.Command, _ []string) {
	bank := mustOpenBank(cmd.Context())
	defer bank.Close()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	if err := tui.RunBrowser(bank, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
