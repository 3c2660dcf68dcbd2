// Package export writes applicant listings as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/parlourcover/parlour/internal/shared/biztime"
)

const applicantSheet = "Applicants"

type ApplicantRow struct {
	PolicyNum      string
	Status         string
	State          string
	PlanName       string
	ConsultantName string
	MainMemberName string
	IDNumber       string
	DateOfBirth    *time.Time
	DateJoined     *time.Time
	MemberCount    int
	CreatedAt      time.Time
}

var applicantHeaders = []string{
	"Policy number",
	"Status",
	"State",
	"Plan",
	"Consultant",
	"Main member",
	"ID number",
	"Date of birth",
	"Date joined",
	"Extended members",
	"Created",
}

// WriteApplicants streams an xlsx workbook with one row per applicant.
func WriteApplicants(w io.Writer, rows []ApplicantRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(applicantSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(applicantHeaders))
	for i, h := range applicantHeaders {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.PolicyNum,
			r.Status,
			r.State,
			r.PlanName,
			r.ConsultantName,
			r.MainMemberName,
			r.IDNumber,
			biztime.FormatDatePtr(r.DateOfBirth),
			biztime.FormatDatePtr(r.DateJoined),
			r.MemberCount,
			biztime.FormatDate(r.CreatedAt),
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
