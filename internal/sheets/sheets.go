// Package sheets appends lead records to a remote Google Sheets
// spreadsheet: the destination tab is created if absent, a header row
// is written when the tab is empty, and one row is appended per record
// in the fixed export column order.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/logger"
	"github.com/leadscout/leadscout/internal/output"
)

// Structured failure reasons surfaced to the caller; in-memory records
// are never affected by a sink failure.
var (
	ErrAuth         = errors.New("sheets: authentication failed")
	ErrNotFound     = errors.New("sheets: spreadsheet not found")
	ErrAccessDenied = errors.New("sheets: access denied")
)

// Client wraps the Sheets API for the append contract.
type Client struct {
	svc *sheetsapi.Service
}

// New builds a Client from a service-account credentials file.
func New(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: creating service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Append writes the records to the named tab of the spreadsheet and
// returns the number of rows appended (excluding any header row).
func (c *Client) Append(ctx context.Context, spreadsheetID, tab string, records []leads.Record, withMessages bool) (int, error) {
	if err := c.ensureTab(ctx, spreadsheetID, tab); err != nil {
		return 0, err
	}

	empty, err := c.tabEmpty(ctx, spreadsheetID, tab)
	if err != nil {
		return 0, err
	}

	var rows [][]any
	if empty {
		rows = append(rows, toAny(output.Columns(withMessages)))
	}
	for _, r := range records {
		rows = append(rows, toAny(output.Row(r, withMessages)))
	}

	_, err = c.svc.Spreadsheets.Values.
		Append(spreadsheetID, tab+"!A1", &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, classifyErr(err)
	}

	logger.Info("appended records to spreadsheet", "spreadsheet", spreadsheetID, "tab", tab, "rows", len(records))
	return len(records), nil
}

// ensureTab creates the destination tab when the spreadsheet lacks it.
func (c *Client) ensureTab(ctx context.Context, spreadsheetID, tab string) error {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return classifyErr(err)
	}
	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: tab},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return classifyErr(err)
	}
	logger.Debug("created spreadsheet tab", "tab", tab)
	return nil
}

func (c *Client) tabEmpty(ctx context.Context, spreadsheetID, tab string) (bool, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, tab+"!A1:A1").Context(ctx).Do()
	if err != nil {
		return false, classifyErr(err)
	}
	return len(resp.Values) == 0, nil
}

// classifyErr maps API errors onto the structured failure reasons.
func classifyErr(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case 403:
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		case 404:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return fmt.Errorf("sheets: %w", err)
}

func toAny(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
