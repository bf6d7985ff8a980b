// Package sheets reads rectangular cell ranges from Google Sheets, the
// source of Google Form registration responses.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// Reader fetches a block of string cells from a named sheet and range. The
// first row of a form response range is the header row.
type Reader interface {
	ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]string, error)
}

// GoogleSheets implements Reader over the Sheets v4 API
type GoogleSheets struct {
	svc *sheetsapi.Service
	log *zap.Logger
}

// NewGoogleSheets builds a read-only Sheets client from a service account
// credential file
func NewGoogleSheets(ctx context.Context, credentialsPath string, log *zap.Logger) (*GoogleSheets, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	log.Info("Google Sheets client initialized")
	return &GoogleSheets{svc: svc, log: log}, nil
}

// ReadRange fetches the given range and coerces every cell to a string.
// Short rows come back short; callers handle missing trailing columns.
func (g *GoogleSheets) ReadRange(ctx context.Context, spreadsheetID, rangeName string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, rangeName).Context(ctx).Do()
	if err != nil {
		g.log.Error("Failed to read sheet range",
			zap.String("spreadsheet_id", spreadsheetID),
			zap.String("range", rangeName),
			zap.Error(err))
		return nil, fmt.Errorf("reading range %q: %w", rangeName, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
