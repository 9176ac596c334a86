package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Inspect collected feedback",
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()

		s := setup(ctx)
		defer s.Close()

		if err := s.openFeedback(); err != nil {
			s.logger.Fatal("listing feedback", zap.Error(err))
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := s.feedback.List(ctx, limit)
		if err != nil {
			s.logger.Fatal("listing feedback", zap.Error(err))
		}

		printFeedback(os.Stdout, records)
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(feedbackListCmd)

	feedbackListCmd.Flags().IntP("limit", "l", 20, "how many records to show, 0 shows all")
}

func printFeedback(out io.Writer, records []feedback.Record) {
	for _, r := range records {
		fmt.Fprintf(out, "%s  %d/5  %-24s %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Rating, r.Tool, orDash(r.Archetype))
		if r.Comment != "" {
			fmt.Fprintf(out, "    %s\n", r.Comment)
		}
	}
	fmt.Fprintf(out, "%d records\n", len(records))
}
