package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndtran/netdiag/internal/diagnose"
	"github.com/ndtran/netdiag/internal/explain"
	"github.com/ndtran/netdiag/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <target>",
	Short: "Run the diagnostic battery and render a Markdown report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		modeFlag, _ := cmd.Flags().GetString("mode")
		withTraceroute, _ := cmd.Flags().GetBool("traceroute")
		noCache, _ := cmd.Flags().GetBool("no-cache")
		outPath, _ := cmd.Flags().GetString("output")

		mode, err := explain.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		agent := diagnose.New(diagnosticsConfig(withTraceroute, noCache))
		res, err := agent.Run(cmd.Context(), target, mode)
		if err != nil {
			return err
		}

		md, err := report.Markdown(res)
		if err != nil {
			return err
		}

		if outPath == "" {
			fmt.Print(md)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("%s Report written to %s\n", colorSuccess("✓"), outPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("mode", "m", "", "explanation mode: beginner or expert (default beginner)")
	reportCmd.Flags().Bool("traceroute", false, "Include a traceroute in the battery")
	reportCmd.Flags().Bool("no-cache", false, "Bypass the result cache")
	reportCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
}
