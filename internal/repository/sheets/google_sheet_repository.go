package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/aquashop/internal/config"
)

// valueInput lets the sheet parse numbers and dates the way a typed cell would.
const valueInput = "USER_ENTERED"

// ErrEmptyRange is returned when an A1 range is missing.
var ErrEmptyRange = errors.New("sheet range must not be empty")

// Repository is the spreadsheet surface of the billing export: closed months
// are appended one row at a time and the full billing table is replaced.
type Repository interface {
	AppendRow(ctx context.Context, sheetRange string, row []interface{}) error
	ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// GoogleSheetRepository writes billing rows into one Google spreadsheet.
type GoogleSheetRepository struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with the service account file from
// cfg unless opts are given.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsPath),
			option.WithScopes(sheetsapi.SpreadsheetsScope),
		}
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRow adds row below the last filled row of sheetRange.
func (r *GoogleSheetRepository) AppendRow(ctx context.Context, sheetRange string, row []interface{}) error {
	if sheetRange == "" {
		return ErrEmptyRange
	}

	body := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	resp, err := r.values.Append(r.spreadsheetID, sheetRange, body).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", sheetRange, err)
	}

	updated := sheetRange
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		updated = resp.Updates.UpdatedRange
	}
	r.logger.Debug("sheet row appended", zap.String("range", updated))
	return nil
}

// ReplaceRange clears sheetRange, then writes rows from its top-left cell.
// Rows left over from a longer previous export are removed by the clear.
func (r *GoogleSheetRepository) ReplaceRange(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return ErrEmptyRange
	}

	if _, err := r.values.Clear(r.spreadsheetID, sheetRange, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", sheetRange, err)
	}

	resp, err := r.values.Update(r.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", sheetRange, err)
	}

	r.logger.Debug("sheet range replaced", zap.String("range", sheetRange), zap.Int64("rows", resp.UpdatedRows))
	return nil
}
