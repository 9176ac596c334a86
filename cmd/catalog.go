package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the tool catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tool, optionally of one category or difficulty",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := setup(context.Background())
		defer s.Close()

		category, _ := cmd.Flags().GetString("category")
		raw, _ := cmd.Flags().GetStringSlice("difficulty")

		var difficulties []catalog.Difficulty
		for _, r := range raw {
			d, ok := catalog.LookupDifficulty(r)
			if !ok {
				s.logger.Fatal("unknown difficulty", zap.String("difficulty", r))
			}
			difficulties = append(difficulties, d)
		}

		listTools(os.Stdout, s.catalog.Filter(category, difficulties...))
	},
}

var catalogFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find the tool that best matches a name",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s := setup(context.Background())
		defer s.Close()

		tool := s.catalog.FindBestMatch(args[0])
		if tool == nil {
			s.logger.Info("tool not found", zap.String("name", args[0]))
			return
		}

		pretty, _ := json.MarshalIndent(tool, "", "  ")
		fmt.Println(string(pretty))
	},
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Report tools grouped by category",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s := setup(context.Background())
		defer s.Close()

		pretty, _ := json.MarshalIndent(s.catalog.Report(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("tools count", s.catalog.Len()))
	},
}

var catalogCriteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Show the scoring criteria and whether each is enabled",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s := setup(context.Background())
		defer s.Close()

		listCriteria(os.Stdout, scoring.Describe(s.engine.Criteria()))
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the loaded catalog to a JSON or YAML file (a temporary file by default)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s := setup(context.Background())
		defer s.Close()

		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		filename, err := s.catalog.Dump(path)
		if err != nil {
			s.logger.Fatal("exporting the catalog", zap.Error(err))
		}
		s.logger.Info("catalog exported", zap.String("filename", filename), zap.Int("tools", s.catalog.Len()))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogFindCmd, catalogCategoriesCmd, catalogCriteriaCmd, catalogExportCmd)

	catalogListCmd.Flags().StringP("category", "c", "", "only tools of this category")
	catalogListCmd.Flags().StringSliceP("difficulty", "d", nil, "only tools of these difficulties (low, medium, hard, unset)")
}

func listTools(out io.Writer, tools []*catalog.Tool) {
	for _, tool := range tools {
		fmt.Fprintf(out, "%-30s %-28s %s\n", tool.Name, orDash(tool.Category), tool.Difficulty)
	}
	fmt.Fprintf(out, "%d tools\n", len(tools))
}

func listCriteria(out io.Writer, statuses []scoring.Status) {
	for _, st := range statuses {
		state := "enabled"
		if !st.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(out, "%-22s %-9s %s\n", st.Name, state, st.Reason)
	}
}
