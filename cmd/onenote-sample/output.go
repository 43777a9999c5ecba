package main

import (
	"io"

	"github.com/deploymenttheory/go-onenote-page-client/response"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderResult writes the outcome of a create page request as a key/value table.
func renderResult(out io.Writer, result response.StandardResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{text.FgHiCyan.Sprint("FIELD"), text.FgHiCyan.Sprint("VALUE")})

	t.AppendRow(table.Row{"Status Code", result.GetStatusCode()})
	t.AppendRow(table.Row{"Correlation ID", valueOrNone(result.GetCorrelationID())})

	switch r := result.(type) {
	case *response.CreateSuccess:
		t.AppendRow(table.Row{"Result", text.FgGreen.Sprint("created")})
		t.AppendRow(table.Row{"Client URL", r.OneNoteClientURL})
		t.AppendRow(table.Row{"Web URL", r.OneNoteWebURL})
		if r.OneNoteClientURL != "" {
			t.AppendRow(table.Row{"Launch URI", response.FormulateLaunchURIString(r.OneNoteClientURL)})
		}
	case *response.CreateError:
		t.AppendRow(table.Row{"Result", text.FgRed.Sprint("failed")})
		t.AppendRow(table.Row{"Status", r.Status})
		if r.ErrorCode != "" {
			t.AppendRow(table.Row{"Error Code", r.ErrorCode})
		}
		for _, detail := range r.Details {
			t.AppendRow(table.Row{"Detail", truncate(detail, 100)})
		}
		if len(r.Details) == 0 {
			t.AppendRow(table.Row{"Message", truncate(r.Message, 100)})
		}
	}

	t.Render()
}

func valueOrNone(value string) string {
	if value == "" {
		return text.FgYellow.Sprint("none")
	}
	return value
}

func truncate(value string, limit int) string {
	if len(value) > limit {
		return value[:limit-3] + "..."
	}
	return value
}
