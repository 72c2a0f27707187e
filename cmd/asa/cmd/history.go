package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/asa/foundation/core/error"

	"github.com/msto63/asa/internal/history"
	"github.com/msto63/asa/internal/render"
)

var (
	historyLimit     int
	historyCommand   string
	historyStatus    string
	historySince     time.Duration
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Verlauf der Parser-Läufe",
	Long: `Zeigt und verwaltet den Verlauf der Parser-Läufe. Läufe werden
gespeichert, wenn history.enabled gesetzt ist oder --history angegeben wird.

Beispiele:
  asa history list --limit 10
  asa history list --status rejected --since 24h
  asa history show 3f2b...
  asa history stats
  asa history prune --older-than 168h`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Läufe auflisten (neueste zuerst)",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Einen Lauf mit Eingabe anzeigen",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistik des Verlaufs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Alte Läufe löschen",
	Long: `Löscht Läufe, die älter als --older-than sind (default: history.retention),
und gibt den Speicher frei.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximale Anzahl")
	historyListCmd.Flags().StringVar(&historyCommand, "command", "", "Nur Läufe dieses Befehls (tokens, parse, check, repl)")
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "Nur Läufe mit diesem Status (ok, rejected)")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "Nur Läufe der letzten Zeitspanne, z.B. 24h")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "Alter, ab dem gelöscht wird")
}

// openHistory opens the configured store whether or not recording is enabled
func openHistory() (history.Store, time.Duration, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, err
	}
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: cfg.History.Path})
	if err != nil {
		return nil, 0, err
	}
	return store, cfg.History.Retention.Duration, nil
}

func parseStatus(s string) (history.Status, error) {
	switch status := history.Status(strings.ToUpper(s)); status {
	case "", history.StatusOK, history.StatusRejected:
		return status, nil
	}
	return "", mdwerror.Newf("unknown status %q, expected ok or rejected", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("cmd.parseStatus")
}

// encode writes v as JSON or YAML when --format asks for it
func encode(w io.Writer, v interface{}) (bool, error) {
	switch render.Format(strings.ToLower(outputFormat)) {
	case render.FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case render.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	status, err := parseStatus(historyStatus)
	if err != nil {
		return err
	}

	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := history.Filter{
		Command: historyCommand,
		Status:  status,
		Limit:   historyLimit,
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	entries, err := store.Query(context.Background(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := encode(out, entries); done {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "Keine Einträge")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-19s  %-7s  %-8s  %-20s  %s\n", "ID", "ZEIT", "BEFEHL", "STATUS", "QUELLE", "MELDUNG")
	for _, e := range entries {
		message := fmt.Sprintf("%d Tokens, %d Funktionen", e.Tokens, e.Functions)
		if e.Status == history.StatusRejected {
			message = e.ErrorCode + ": " + e.Message
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-7s  %-8s  %-20s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Command,
			e.Status,
			truncate(e.Source, 20),
			message,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := encode(out, entry); done {
		return err
	}

	fmt.Fprintf(out, "ID:         %s\n", entry.ID)
	if entry.RunID != "" {
		fmt.Fprintf(out, "Run-ID:     %s\n", entry.RunID)
	}
	fmt.Fprintf(out, "Zeit:       %s\n", entry.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Befehl:     %s\n", entry.Command)
	fmt.Fprintf(out, "Quelle:     %s\n", entry.Source)
	fmt.Fprintf(out, "Status:     %s\n", entry.Status)
	fmt.Fprintf(out, "Tokens:     %d\n", entry.Tokens)
	fmt.Fprintf(out, "Funktionen: %d\n", entry.Functions)
	fmt.Fprintf(out, "Dauer:      %s\n", entry.Duration)
	if entry.Status == history.StatusRejected {
		fmt.Fprintf(out, "Fehler:     %s (Zeile %d, Spalte %d)\n", entry.ErrorCode, entry.Line, entry.Column)
		fmt.Fprintf(out, "Meldung:    %s\n", entry.Message)
		if entry.Severity != "" {
			fmt.Fprintf(out, "Schwere:    %s\n", entry.Severity)
		}
	}
	for key, value := range entry.Metadata {
		fmt.Fprintf(out, "%-11s %v\n", key+":", value)
	}
	fmt.Fprintf(out, "\n%s\n", entry.Input)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := encode(out, stats); done {
		return err
	}

	fmt.Fprintf(out, "Läufe gesamt: %d\n", stats.Total)
	if !stats.LastEntry.IsZero() {
		fmt.Fprintf(out, "Letzter Lauf:  %s\n", stats.LastEntry.Local().Format(time.RFC3339))
	}
	fmt.Fprintln(out, "Nach Status:")
	for _, status := range []history.Status{history.StatusOK, history.StatusRejected} {
		fmt.Fprintf(out, "  %-10s %d\n", status, stats.ByStatus[string(status)])
	}
	fmt.Fprintln(out, "Nach Befehl:")
	for command, n := range stats.ByCommand {
		fmt.Fprintf(out, "  %-10s %d\n", command, n)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, retention, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	olderThan := historyOlderThan
	if olderThan <= 0 {
		olderThan = retention
	}

	ctx := context.Background()
	deleted, err := store.Prune(ctx, olderThan)
	if err != nil {
		return err
	}
	if err := store.Vacuum(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d Läufe gelöscht (älter als %s)\n", deleted, olderThan)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
