package main

import (
	"fmt"
	"os"

	"github.com/crucial707/qa-forum/cmd/cli/auth"
	"github.com/crucial707/qa-forum/cmd/cli/categories"
	"github.com/crucial707/qa-forum/cmd/cli/questions"
	"github.com/crucial707/qa-forum/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	categories.InitCategories(rootCmd)
	questions.InitQuestions(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
