package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize memories with a markdown document",
	}

	importCmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import document sections as semantic memories",
		Long:  "Splits the document on '## ' headers and stores each new section. The sync ledger tracks content identities so reruns only store what changed.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSyncImport,
	}
	syncCmd.AddCommand(importCmd)

	exportCmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export high-importance memories to a document",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSyncExport,
	}
	exportCmd.Flags().Float64P("min-importance", "i", 0.5, "Importance floor for exported records")
	syncCmd.AddCommand(exportCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Full bidirectional sync: import then export",
		Run:   runSyncFull,
	}
	runCmd.Flags().Float64P("min-importance", "i", 0.5, "Importance floor for exported records")
	syncCmd.AddCommand(runCmd)

	RootCmd.AddCommand(syncCmd)
}

func runSyncImport(cmd *cobra.Command, args []string) {
	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	docPath := s.cfg.MemoryFilePath
	if len(args) > 0 {
		docPath = args[0]
	}

	resp, err := s.engine.ImportFile(docPath, s.cfg.EffectiveLedgerPath())
	if err != nil {
		exitErr("import", err)
	}
	printJSON(resp)
}

func runSyncExport(cmd *cobra.Command, args []string) {
	minImp, _ := cmd.Flags().GetFloat64("min-importance")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	if len(args) > 0 || s.cfg.ExportPath != "" {
		path := s.cfg.ExportPath
		if len(args) > 0 {
			path = args[0]
		}
		resp, err := s.engine.ExportFile(path, minImp)
		if err != nil {
			exitErr("export", err)
		}
		fmt.Printf("{\"exported\": %d, \"path\": %q}\n", resp.Exported, path)
		return
	}

	resp, err := s.engine.Export(minImp)
	if err != nil {
		exitErr("export", err)
	}
	fmt.Print(resp.Document)
}

func runSyncFull(cmd *cobra.Command, args []string) {
	minImp, _ := cmd.Flags().GetFloat64("min-importance")

	s, err := buildServices()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	stats, err := s.engine.FullSync(
		s.cfg.MemoryFilePath,
		s.cfg.EffectiveLedgerPath(),
		s.cfg.ExportPath,
		minImp,
	)
	if err != nil {
		exitErr("sync", err)
	}
	printJSON(stats)
}
