// Package report renders a task snapshot as JSON, CSV, or PDF.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/taskdeck/taskdeck/internal/task"
)

// Export renders tasks in the given format: "json", "csv", or "pdf".
func Export(tasks []*task.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return exportJSON(tasks)
	case "csv":
		return exportCSV(tasks)
	case "pdf":
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func exportJSON(tasks []*task.Task) ([]byte, error) {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func exportCSV(tasks []*task.Task) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "priority", "status", "due_date", "tags", "created_at", "updated_at"})
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			t.ID,
			t.Title,
			t.Description,
			t.Priority.String(),
			t.Status.String(),
			due,
			strings.Join(t.Tags, ","),
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func exportPDF(tasks []*task.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		line := fmt.Sprintf("[%s] [%s] %s", t.Status, t.Priority, t.Title)
		if t.DueDate != nil {
			line += fmt.Sprintf(" (due %s)", t.DueDate.Format("2006-01-02 15:04"))
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
		if t.Description != "" {
			pdf.MultiCell(0, 5, "    "+t.Description, "0", "L", false)
		}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
