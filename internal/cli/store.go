package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentops/recall/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "store [content]",
		Short: "Store a memory record",
		Long:  "Embed the content once and store it as a memory record in the vector store.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runStore,
	}

	cmd.Flags().StringP("type", "t", "semantic", "Memory type: semantic, episodic, or procedural")
	cmd.Flags().Float64P("importance", "i", 0.7, "Importance score in [0,1]")
	cmd.Flags().StringSliceP("entity", "e", nil, "Entity tags (repeatable)")
	cmd.Flags().StringP("session", "s", "", "Session ID")

	RootCmd.AddCommand(cmd)
}

func runStore(cmd *cobra.Command, args []string) {
	memType, _ := cmd.Flags().GetString("type")
	imp, _ := cmd.Flags().GetFloat64("importance")
	entities, _ := cmd.Flags().GetStringSlice("entity")
	session, _ := cmd.Flags().GetString("session")

	mt := models.MemoryType(memType)
	if !mt.IsValid() {
		exitErr("store", fmt.Errorf("invalid memory type %q", memType))
	}

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	resp, err := s.svc.Store(&models.StoreRequest{
		Content:    strings.Join(args, " "),
		MemoryType: mt,
		Importance: imp,
		Entities:   entities,
		SessionID:  session,
	})
	if err != nil {
		exitErr("store", err)
	}
	printJSON(resp)
}
