package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level "forum" command.
var RootCmd = &cobra.Command{
	Use:           "forum",
	Short:         "Q&A forum CLI",
	Long:          "Command line interface for the Q&A forum API: browse categories, ask questions and post answers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the root command.
func GetRoot() *cobra.Command {
	return RootCmd
}
