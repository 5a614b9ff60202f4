package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentops/recall/internal/bench"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bench [query]",
		Short: "Compare vector search against flat-document keyword search",
		Args:  cobra.MinimumNArgs(1),
		Run:   runBench,
	}

	cmd.Flags().StringP("doc", "d", "", "Markdown document to search (default: configured memory file)")
	cmd.Flags().IntP("limit", "l", 5, "Max results per side")

	RootCmd.AddCommand(cmd)
}

func runBench(cmd *cobra.Command, args []string) {
	docPath, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	if docPath == "" {
		docPath = s.cfg.MemoryFilePath
	}

	report, err := bench.Run(s.svc, docPath, query, limit)
	if err != nil {
		exitErr("bench", err)
	}
	printJSON(report)
}
