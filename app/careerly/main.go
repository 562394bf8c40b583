// Command careerly runs the job-platform API server and its one-shot
// bootstrap utilities.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerly",
	Short: "Careerly job platform backend",
	Long:  "Careerly serves the job board, application, resume and AI writing APIs, and gates the web pages by session and role.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
