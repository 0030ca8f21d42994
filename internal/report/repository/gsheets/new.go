package gsheets

import (
	"context"
	"fmt"

	"weekly-task-report/internal/report/repository"
	pkgGsheets "weekly-task-report/pkg/gsheets"
	pkgLog "weekly-task-report/pkg/log"
)

// Worksheet is the part of a Google worksheet the repository reads.
type Worksheet interface {
	GetAllRecords(ctx context.Context) ([]pkgGsheets.Record, error)
}

// OpenFunc authorizes and resolves the worksheet.
type OpenFunc func(ctx context.Context) (Worksheet, error)

type implRepository struct {
	l      pkgLog.Logger
	handle *repository.Handle[Worksheet]
}

// New creates a SheetRepository backed by Google Sheets.
func New(l pkgLog.Logger, open OpenFunc) repository.SheetRepository {
	r := &implRepository{l: l}
	r.handle = repository.NewHandle(func(ctx context.Context) (Worksheet, error) {
		l.Infof(ctx, "gsheets.repository: opening worksheet")
		return open(ctx)
	}, nil)
	return r
}

// ServiceAccountOpener opens sheetName of spreadsheetID with a service account key file.
func ServiceAccountOpener(credentialsPath, spreadsheetID, sheetName string) OpenFunc {
	return func(ctx context.Context) (Worksheet, error) {
		client, err := pkgGsheets.NewClientFromCredentialsFile(ctx, credentialsPath)
		if err != nil {
			return nil, err
		}
		ws, err := client.OpenWorksheet(ctx, spreadsheetID, sheetName)
		if err != nil {
			return nil, fmt.Errorf("open worksheet: %w", err)
		}
		return ws, nil
	}
}
