package questions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/qa-forum/cmd/cli/config"
	"github.com/crucial707/qa-forum/cmd/cli/output"
	"github.com/crucial707/qa-forum/internal/client"
	"github.com/crucial707/qa-forum/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// ==========================
// Init Questions
// ==========================

// InitQuestions registers the questions command group and answer.
func InitQuestions(rootCmd *cobra.Command) {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Browse and ask questions",
	}

	questionsCmd.AddCommand(
		listQuestionsCmd(),
		showQuestionCmd(),
		askQuestionCmd(),
	)

	rootCmd.AddCommand(questionsCmd, answerCmd())
}

// ==========================
// LIST
// ==========================
func listQuestionsCmd() *cobra.Command {
	var categoryID int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the questions of a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			list, err := cfg.Client().QuestionsByCategory(cmd.Context(), categoryID)
			if err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, q := range list {
				rows = append(rows, []interface{}{
					q.ID, client.QuestionLabel(q), q.User.Username, q.AnswerCount, q.CreatedAt.Local().Format(timeLayout),
				})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Question", "Author", "Answers", "Asked"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", 0, "category id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagRequired("category")
	return cmd
}

// ==========================
// SHOW
// ==========================
func showQuestionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			q, err := cfg.Client().Question(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), q)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", client.QuestionHeading(q.Question))
			fmt.Fprintf(out, "asked by %s in %s on %s\n\n", q.User.Username, q.Category.Name, q.CreatedAt.Local().Format(timeLayout))
			output.RenderText(out, q.Content, 80)
			fmt.Fprintln(out)

			if len(q.Answers) == 0 {
				fmt.Fprintln(out, "No answers yet.")
				return nil
			}
			rows := make([][]interface{}, 0, len(q.Answers))
			for _, a := range q.Answers {
				rows = append(rows, []interface{}{a.User.Username, a.Content, a.CreatedAt.Local().Format(timeLayout)})
			}
			output.RenderTable(out, []string{"Author", "Answer", "Posted"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// ==========================
// ASK
// ==========================
func askQuestionCmd() *cobra.Command {
	var categoryID int
	var title, content string

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask a question (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			content = strings.TrimSpace(content)
			if !strings.HasSuffix(content, "?") {
				return errors.New("question content must end with a question mark")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			api, err := cfg.Authed()
			if err != nil {
				return err
			}
			q, err := api.AskQuestion(cmd.Context(), models.NewQuestion{Title: title, Content: content, CategoryID: categoryID})
			if err != nil {
				return cfg.CheckAuth(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Question %d posted in %s.\n", q.ID, q.Category.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&title, "title", "", "optional title")
	cmd.Flags().StringVar(&content, "content", "", "question text, ending with ?")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("content")
	return cmd
}

// ==========================
// ANSWER
// ==========================
func answerCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "answer [question-id]",
		Short: "Answer a question (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			if strings.TrimSpace(content) == "" {
				return errors.New("answer content cannot be empty")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			api, err := cfg.Authed()
			if err != nil {
				return err
			}
			a, err := api.PostAnswer(cmd.Context(), models.NewAnswer{Content: content, QuestionID: id})
			if err != nil {
				return cfg.CheckAuth(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Answer %d posted on question %d.\n", a.ID, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "answer text")
	cmd.MarkFlagRequired("content")
	return cmd
}
