package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/internal/config"
	"github.com/jakechorley/connect-care/pkg/core/analyzer"
	"github.com/jakechorley/connect-care/pkg/core/services"
	"github.com/jakechorley/connect-care/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Stores   *db.Stores
	Analyzer analyzer.Analyzer
	Logger   *zap.Logger
	Ctx      context.Context

	// Publisher connects to Google Sheets on first use, so only publishReport needs OAuth
	Publisher func() (services.ReportPublisher, error)

	// Now defaults to time.Now when nil
	Now func() time.Time
}

func (a *AppContext) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
