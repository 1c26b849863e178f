package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vectortutor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the journal of backend requests",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		action, _ := cmd.Flags().GetString("action")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		calls, err := s.EventRepo().QueryAPICalls(cmd.Context(), store.QueryOpts{Limit: limit, Action: action})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(calls) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-19s  %-6s  %-30s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Action", "Method", "Path", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, c := range calls {
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			path := c.Path
			if len(path) > 30 {
				path = path[:30]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-19s  %-6s  %-30s  %-6d  %-7d  %s\n",
				c.ID,
				c.Timestamp.Local().Format("2006-01-02 15:04:05"),
				c.Action,
				c.Method,
				path,
				c.StatusCode,
				c.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one recorded request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.EventRepo().GetAPICall(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if c == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", c.ID)
		fmt.Fprintf(out, "Time:      %s\n", c.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Request:   %s\n", c.RequestID)
		fmt.Fprintf(out, "Action:    %s\n", c.Action)
		fmt.Fprintf(out, "Call:      %s %s\n", c.Method, c.Path)
		fmt.Fprintf(out, "Status:    %d\n", c.StatusCode)
		fmt.Fprintf(out, "Attempt:   %d\n", c.Attempt)
		fmt.Fprintf(out, "Latency:   %dms\n", c.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", c.ErrorMessage)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "RESPONSE")
		fmt.Fprintln(out, sep)
		if c.ResponseBody != "" {
			fmt.Fprintln(out, c.ResponseBody)
		} else {
			fmt.Fprintln(out, "(not captured)")
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show request counts, failures and latency per action",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().UsageByAction(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}

		fmt.Fprintln(out, "Requests by Action")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%-20s  %8s  %8s  %10s\n", "Action", "Calls", "Failed", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 56))

		var calls, failures int
		for _, u := range usage {
			fmt.Fprintf(out, "%-20s  %8d  %8d  %10d\n", u.Action, u.Calls, u.Failures, u.AvgLatencyMs)
			calls += u.Calls
			failures += u.Failures
		}

		fmt.Fprintln(out, strings.Repeat("─", 56))
		fmt.Fprintf(out, "%-20s  %8d  %8d\n", "TOTAL", calls, failures)
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Number of requests to show")
	historyListCmd.Flags().String("action", "", "Only show this action (e.g. upload, quiz-submit)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyStatsCmd)
}

// openJournal opens the request journal selected by flags and environment.
func openJournal(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
