package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/secubot/internal/cli"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "secubot",
		Short: "SecuBot - RAG-based security review for pull requests",
		Long: `SecuBot reviews pull request diffs against a curated security
knowledge base and posts a risk verdict as a PR comment.

Environment variables:
  SECUBOT_OPENAI_API_KEY        OpenAI API key (required)
  SECUBOT_GITHUB_TOKEN          GitHub token for diff fetch and comments
  SECUBOT_KNOWLEDGE_BASE_PATH   Knowledge base directory (default: knowledge-base)
  SECUBOT_DATABASE_URL          Postgres URL for the persistent pgvector index`,
		Version: version,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(cli.ReviewCmd())
	rootCmd.AddCommand(cli.IndexCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "review")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
