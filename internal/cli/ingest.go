package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentops/recall/internal/models"
)

func init() {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest conversation content as episodic memories",
	}

	turn := &cobra.Command{
		Use:   "turn [content]",
		Short: "Ingest a single conversation turn",
		Long:  "Score the turn's importance by role and signal phrases, extract entities, and store it as an episodic record. Turns under 20 characters are skipped.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runIngestTurn,
	}
	turn.Flags().StringP("role", "r", "user", "Speaker role: user or assistant")
	turn.Flags().StringP("session", "s", "", "Session ID")
	ingestCmd.AddCommand(turn)

	file := &cobra.Command{
		Use:   "file [path]",
		Short: "Ingest a transcript file",
		Long:  "Accepts a JSON array of {role, content} objects or plain text with user:/assistant: line prefixes.",
		Args:  cobra.ExactArgs(1),
		Run:   runIngestFile,
	}
	file.Flags().StringP("session", "s", "", "Session ID")
	ingestCmd.AddCommand(file)

	RootCmd.AddCommand(ingestCmd)
}

func runIngestTurn(cmd *cobra.Command, args []string) {
	role, _ := cmd.Flags().GetString("role")
	session, _ := cmd.Flags().GetString("session")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	id, err := s.ingestor.IngestTurn(strings.Join(args, " "), role, session)
	if err != nil {
		exitErr("ingest", err)
	}
	printJSON(models.IngestResponse{ID: id, Skipped: id == ""})
}

func runIngestFile(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read transcript", err)
	}

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	stored, err := s.ingestor.IngestTranscript(data, session)
	if err != nil {
		exitErr("ingest", err)
	}
	fmt.Printf("{\"stored\": %d}\n", stored)
}
