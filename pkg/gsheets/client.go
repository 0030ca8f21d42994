package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"weekly-task-report/pkg/records"
)

// Client wraps the Google Sheets API service.
type Client struct {
	service *sheets.Service
}

// Worksheet is one tab of a spreadsheet.
type Worksheet struct {
	service       *sheets.Service
	spreadsheetID string
	title         string
}

// NewClientFromCredentialsFile creates a read-only Sheets client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a read-only Sheets client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Sheets client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: svc}, nil
}

// OpenWorksheet resolves the tab called title in the given spreadsheet.
func (c *Client) OpenWorksheet(ctx context.Context, spreadsheetID, title string) (*Worksheet, error) {
	doc, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return &Worksheet{service: c.service, spreadsheetID: spreadsheetID, title: title}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrWorksheetNotFound, title, spreadsheetID)
}

// Title returns the worksheet's tab name.
func (w *Worksheet) Title() string {
	return w.title
}

// GetAllRecords reads the whole tab. The first row is the header; every later
// row becomes a Record. Cells missing at the end of a row read as "".
func (w *Worksheet) GetAllRecords(ctx context.Context) ([]Record, error) {
	resp, err := w.service.Spreadsheets.Values.Get(w.spreadsheetID, quoteRange(w.title)).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.title, err)
	}
	recs, err := RecordsFromRows(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", w.title, err)
	}
	return recs, nil
}

// RecordsFromRows maps rows onto the header row rows[0]. Every later row
// becomes a Record, blank ones included, so record i is sheet row i+2.
func RecordsFromRows(rows [][]interface{}) ([]Record, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	header, err := records.Header(cellStrings(rows[0]))
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, Record(records.Map(header, cellStrings(row))))
	}
	return out, nil
}

func quoteRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func cellStrings(row []interface{}) []string {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = cellString(cell)
	}
	return cells
}
