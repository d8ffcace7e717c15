package usecase

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type exportUsecase struct {
	tracker domain.TrackerUsecase
}

// NewExportUsecase renders the confirmed tracked set as a spreadsheet. It
// reads through the tracker, so it always exports what the user sees.
func NewExportUsecase(tracker domain.TrackerUsecase) domain.ExportUsecase {
	return &exportUsecase{tracker: tracker}
}

func (u *exportUsecase) ExportXLSX() ([]byte, error) {
	apps := u.tracker.List(domain.StatusAll)

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"ID", "JOB TITLE", "COMPANY", "LOCATION", "STATUS",
		"APPLIED AT", "CREATED AT", "UPDATED AT", "NOTES",
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	const timeLayout = "2006-01-02 15:04"
	for row, app := range apps {
		location := ""
		if app.Job.Location != nil {
			location = *app.Job.Location
		}
		appliedAt := ""
		if app.AppliedAt != nil {
			appliedAt = app.AppliedAt.Format(timeLayout)
		}
		notes := ""
		if app.Notes != nil {
			notes = *app.Notes
		}

		values := []interface{}{
			app.ID,
			app.Job.Title,
			app.Job.Company,
			location,
			app.Status,
			appliedAt,
			app.CreatedAt.Format(timeLayout),
			app.UpdatedAt.Format(timeLayout),
			notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, apperror.Internal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("write workbook: %w", err))
	}
	return buf.Bytes(), nil
}
