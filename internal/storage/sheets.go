package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"csnews/internal/models"
	"csnews/internal/ui"
)

// ExportResult reports where an export landed.
type ExportResult struct {
	SpreadsheetID string
	URL           string
}

// ExportToSheets writes the items to a Google Sheet using the service
// account credentials file in the data directory. When spreadsheetID is
// empty a new spreadsheet is created and its ID remembered for next time.
func (s *Storage) ExportToSheets(ctx context.Context, items []models.NewsItem, spreadsheetID string) (*ExportResult, error) {
	credentials, err := os.ReadFile(s.credentialsPath())
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", s.credentialsPath(), err)
	}

	oauthConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	if spreadsheetID == "" {
		spreadsheetID, err = s.createSpreadsheet(sheetsService)
		if err != nil {
			return nil, err
		}
		if err := s.SaveSpreadsheetID(spreadsheetID); err != nil {
			return nil, fmt.Errorf("failed to save spreadsheet ID: %w", err)
		}
	}

	values := [][]interface{}{
		{"Title", "Link", "Source", "Published Date", "Exported Date"},
	}
	exportedDate := time.Now().Format("2006-01-02 15:04:05")
	for _, item := range items {
		publishedDate := "Recent"
		if item.HasDate() {
			publishedDate = item.Published.Format("2006-01-02 15:04:05")
		}
		values = append(values, []interface{}{
			item.Title,
			item.Link,
			ui.Domain(item.Source),
			publishedDate,
			exportedDate,
		})
	}

	writeRange := fmt.Sprintf("Sheet1!A1:E%d", len(values))
	_, err = sheetsService.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to update spreadsheet: %w", err)
	}

	if err := s.freezeHeaderRow(ctx, sheetsService, spreadsheetID); err != nil {
		return nil, err
	}

	return &ExportResult{
		SpreadsheetID: spreadsheetID,
		URL:           fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID),
	}, nil
}

func (s *Storage) createSpreadsheet(sheetsService *sheets.Service) (string, error) {
	timestamp := time.Now().Format("2006-01-02-15-04-05")
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: fmt.Sprintf("CS News - %s", timestamp),
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Sheet1",
				},
			},
		},
	}

	spreadsheet, err := sheetsService.Spreadsheets.Create(spreadsheet).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}
	return spreadsheet.SpreadsheetId, nil
}

func (s *Storage) freezeHeaderRow(ctx context.Context, sheetsService *sheets.Service, spreadsheetID string) error {
	spreadsheet, err := sheetsService.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to get spreadsheet: %w", err)
	}
	if len(spreadsheet.Sheets) == 0 {
		return fmt.Errorf("spreadsheet has no sheets")
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: spreadsheet.Sheets[0].Properties.SheetId,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}

	if _, err := sheetsService.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to freeze header row: %w", err)
	}
	return nil
}

func (s *Storage) SaveSpreadsheetID(id string) error {
	data, err := json.MarshalIndent(map[string]string{"id": id}, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling spreadsheet ID: %w", err)
	}
	if err := os.WriteFile(s.spreadsheetPath(), data, 0644); err != nil {
		return fmt.Errorf("error saving spreadsheet ID: %w", err)
	}
	return nil
}

// LoadSpreadsheetID returns the remembered spreadsheet ID, or "" when no
// export has happened yet.
func (s *Storage) LoadSpreadsheetID() (string, error) {
	data, err := os.ReadFile(s.spreadsheetPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("error reading spreadsheet ID: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("error parsing spreadsheet ID: %w", err)
	}
	return stored["id"], nil
}
