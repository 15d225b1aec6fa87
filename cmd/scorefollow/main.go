package main

import (
	"os"

	"github.com/leandrodaf/scorefollow/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(cmd.NewFollowCommand())
	rootCmd.AddCommand(cmd.NewExtractCommand())
	rootCmd.AddCommand(cmd.NewInfoCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
