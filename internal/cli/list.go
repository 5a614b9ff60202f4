package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentops/recall/internal/models"
)

func init() {
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List recent memories",
		Run:   runRecent,
	}
	recent.Flags().IntP("hours", "H", 24, "Trailing window in hours")
	recent.Flags().IntP("limit", "l", 20, "Max results")
	recent.Flags().StringP("type", "t", "", "Filter by memory type")
	RootCmd.AddCommand(recent)

	entities := &cobra.Command{
		Use:   "entities [entity...]",
		Short: "List memories tagged with all given entities",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEntities,
	}
	entities.Flags().IntP("limit", "l", 20, "Max results")
	RootCmd.AddCommand(entities)

	count := &cobra.Command{
		Use:   "count",
		Short: "Count memories for the agent",
		Run:   runCount,
	}
	RootCmd.AddCommand(count)
}

func runRecent(cmd *cobra.Command, args []string) {
	hours, _ := cmd.Flags().GetInt("hours")
	limit, _ := cmd.Flags().GetInt("limit")
	memType, _ := cmd.Flags().GetString("type")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	results, err := s.svc.Recent(hours, limit, models.MemoryType(memType))
	if err != nil {
		exitErr("recent", err)
	}
	printJSON(results)
}

func runEntities(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	results, err := s.svc.ByEntities(args, limit)
	if err != nil {
		exitErr("entities", err)
	}
	printJSON(results)
}

func runCount(cmd *cobra.Command, args []string) {
	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	n, err := s.svc.Count()
	if err != nil {
		exitErr("count", err)
	}
	printJSON(models.CountResponse{Count: n})
}
