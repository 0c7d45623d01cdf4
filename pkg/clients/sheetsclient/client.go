package sheetsclient

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/utils"
)

// Client publishes situation reports to Google Sheets
type Client struct {
	service *sheets.Service
	logger  *zap.Logger
}

// NewClient authorizes against Google (browser flow only when no saved token for env
// is usable) and returns a client for the Sheets API
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string, logger *zap.Logger) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// readRange returns the cell values of an A1 range
func (c *Client) readRange(spreadsheetID, a1 string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, a1).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1, err)
	}
	return resp.Values, nil
}

// addTab appends an empty tab to the spreadsheet
func (c *Client) addTab(spreadsheetID, title string) error {
	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
		}},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to add tab %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return errors.New("unexpected response from add tab")
	}

	c.logger.Debug("Added tab",
		zap.String("title", title),
		zap.Int64("sheet_id", resp.Replies[0].AddSheet.Properties.SheetId))
	return nil
}
