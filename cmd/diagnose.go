package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndtran/netdiag/internal/diagnose"
	"github.com/ndtran/netdiag/internal/explain"
	"github.com/ndtran/netdiag/internal/report"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <target>",
	Short: "Run the full diagnostic battery against a host or URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		modeFlag, _ := cmd.Flags().GetString("mode")
		withTraceroute, _ := cmd.Flags().GetBool("traceroute")
		asJSON, _ := cmd.Flags().GetBool("json")
		noCache, _ := cmd.Flags().GetBool("no-cache")

		mode, err := explain.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		agent := diagnose.New(diagnosticsConfig(withTraceroute, noCache))
		res, err := agent.Run(cmd.Context(), target, mode)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printDiagnosis(res)
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().StringP("mode", "m", "", "explanation mode: beginner or expert (default beginner)")
	diagnoseCmd.Flags().Bool("traceroute", false, "Include a traceroute in the battery")
	diagnoseCmd.Flags().Bool("json", false, "Emit the raw result as JSON")
	diagnoseCmd.Flags().Bool("no-cache", false, "Bypass the result cache")
}

func printDiagnosis(res *diagnose.Result) {
	fmt.Printf("%s Diagnosing %s (host: %s, mode: %s)\n\n",
		colorInfo("→"), res.Target, res.Host, res.Mode)

	for _, ns := range res.Raw.Namespaces() {
		status := "fail"
		if res.Raw.Passed(ns) {
			status = "ok"
		}
		fmt.Printf("  [%s] %-10s %s\n",
			formatStatusWithColor(status), strings.ToUpper(ns), res.Explained[ns])
	}

	score := report.Score(res.Raw)
	scoreText := fmt.Sprintf("%d/100", score)
	if score == 100 {
		scoreText = colorSuccess(scoreText)
	} else if score < 50 {
		scoreText = colorError(scoreText)
	} else {
		scoreText = colorWarn(scoreText)
	}
	fmt.Printf("\n%s Health score: %s (%dms)\n", colorInfo("→"), scoreText, res.DurationMs)
}
