package cli

import (
	"github.com/spf13/cobra"

	"sbcanalyzer/internal/prompt"
)

var questionsExamples bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions asked of every SBC",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		examples := prompt.ExampleAnswers()
		for i, q := range prompt.Questions() {
			cmd.Printf("%2d. %s\n", i+1, q)
			if questionsExamples && i < len(examples) {
				cmd.Printf("    e.g. %s\n", examples[i])
			}
		}
	},
}

func init() {
	questionsCmd.Flags().BoolVar(&questionsExamples, "examples", false, "also print the example answers")
	rootCmd.AddCommand(questionsCmd)
}
