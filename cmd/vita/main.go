package main

import (
	"os"

	"github.com/spf13/cobra"

	"vita/cmd/vita/chat"
	"vita/cmd/vita/serve"
	"vita/internal/logger"
)

func main() {
	logger.Init()
	rootCmd := &cobra.Command{
		Use:   "vita",
		Short: "Vita is a personal profile assistant",
	}

	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(chat.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
