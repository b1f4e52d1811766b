package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const (
	SheetRankings = "Rankings"
	SheetSchedule = "Schedule"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// New builds a Sheets client from a service account. credentials is either
// a path to the key file or the key JSON itself.
func New(ctx context.Context, credentials, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	var creds option.ClientOption
	switch {
	case strings.HasPrefix(strings.TrimSpace(credentials), "{"):
		creds = option.WithCredentialsJSON([]byte(credentials))
	case credentials != "":
		if _, err := os.Stat(credentials); err != nil {
			return nil, fmt.Errorf("service account json: %w", err)
		}
		creds = option.WithCredentialsFile(credentials)
	default:
		return nil, fmt.Errorf("service account credentials are required")
	}

	srv, err := sheetsv4.NewService(ctx, creds, option.WithScopes(sheetsv4.SpreadsheetsScope))
	if err != nil {
		return nil, err
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// Replace clears sheet and writes rows starting at A1
func (c *Client) Replace(ctx context.Context, sheet string, rows [][]interface{}) error {
	rng := sheet + "!A:Z"
	if _, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("clear %s: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil
	}

	vr := &sheetsv4.ValueRange{Values: rows}
	if _, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("update %s: %w", sheet, err)
	}
	return nil
}
