package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tally/internal/domain"
)

// HistoryCmd shows recently fetched repositories
type HistoryCmd struct {
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
	Limit  int    `help:"Maximum number of results" default:"20" short:"l"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	history, err := cli.Container.History()
	if err != nil {
		return fmt.Errorf("fetch history is unavailable: %w", err)
	}

	records, err := history.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("failed to get fetch history: %w", err)
	}

	switch h.Format {
	case "json":
		return h.renderJSON(records)
	default:
		h.renderTable(records)
	}
	return nil
}

// renderTable displays fetch records in table format
func (h *HistoryCmd) renderTable(records []domain.FetchRecord) {
	if len(records) == 0 {
		fmt.Println("No fetches recorded yet.")
		return
	}

	fmt.Println("Started              Status     Duration  Source")
	fmt.Println(strings.Repeat("─", 80))

	for _, r := range records {
		source := r.URI
		if r.Status != domain.FetchStatusOK && r.Error != "" {
			errMsg := r.Error
			if len(errMsg) > 40 {
				errMsg = errMsg[:37] + "..."
			}
			source = fmt.Sprintf("%s (%s)", source, errMsg)
		}
		fmt.Printf("%-20s %-10s %-9s %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.Duration().Round(100*time.Millisecond),
			source)
	}
}

// fetchRecordJSON represents a fetch record in JSON format
type fetchRecordJSON struct {
	DerivedPath string `json:"derived_path"`
	Error       string `json:"error,omitempty"`
	FinishedAt  string `json:"finished_at"`
	RunID       string `json:"run_id"`
	StartedAt   string `json:"started_at"`
	Status      string `json:"status"`
	URI         string `json:"uri"`
}

// renderJSON displays fetch records in JSON format
func (h *HistoryCmd) renderJSON(records []domain.FetchRecord) error {
	out := make([]fetchRecordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, fetchRecordJSON{
			DerivedPath: r.DerivedPath,
			Error:       r.Error,
			FinishedAt:  r.FinishedAt.Format(time.RFC3339),
			RunID:       r.RunID,
			StartedAt:   r.StartedAt.Format(time.RFC3339),
			Status:      string(r.Status),
			URI:         r.URI,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fetch history: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
