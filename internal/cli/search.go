package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memories",
		Long:  "Hybrid search fuses dense similarity with keyword overlap. Keyword mode scans the whole corpus without the embedding gateway, useful for exact tokens like error codes.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("mode", "m", "hybrid", "Search mode: hybrid or keyword")
	cmd.Flags().IntP("limit", "l", 5, "Max results")
	cmd.Flags().Float64("dense-weight", 0, "Dense score weight (default from config)")
	cmd.Flags().Float64("keyword-weight", 0, "Keyword score weight (default from config)")
	cmd.Flags().Float64P("min-importance", "i", 0, "Importance floor for candidates")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	limit, _ := cmd.Flags().GetInt("limit")
	dw, _ := cmd.Flags().GetFloat64("dense-weight")
	kw, _ := cmd.Flags().GetFloat64("keyword-weight")
	minImp, _ := cmd.Flags().GetFloat64("min-importance")
	query := strings.Join(args, " ")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	switch mode {
	case "keyword":
		results, err := s.searcher.KeywordSearch(query, limit, minImp)
		if err != nil {
			exitErr("keyword search", err)
		}
		printJSON(results)
	default:
		results, err := s.searcher.HybridSearch(query, limit, minImp, dw, kw)
		if err != nil {
			exitErr("hybrid search", err)
		}
		printJSON(results)
	}
}
