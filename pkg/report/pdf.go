package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/policyaudit/policyaudit/pkg/oracle"
)

// WritePDF renders the consolidated results as a PDF and writes it under the
// reports directory. The returned path identifies the stored artifact.
func (r *Renderer) WritePDF(results []oracle.ScoreResult, overallScore float64, fileName string) (path string, err error) {
	err = os.MkdirAll(r.reportsDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create reports directory: %s", r.reportsDir)
		return path, err
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "Policy Compliance Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(47, 79, 79)
	pdf.CellFormat(0, 10, fmt.Sprintf("Overall Compliance Score: %.1f%%", overallScore), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, result := range results {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(47, 79, 79)
		pdf.CellFormat(0, 9, result.Category, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 6, fmt.Sprintf("Score: %.0f%%", result.Score), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Analysis:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, result.Analysis, "", "L", false)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Recommendations:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, result.Recommendations, "", "L", false)
		pdf.Ln(6)
	}

	path = r.reportPath(fileName)
	err = pdf.OutputFileAndClose(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF report: %s", path)
		return path, err
	}

	r.logger.Info("wrote PDF report", "path", path)
	return path, err
}

// reportPath builds a timestamped report path from the uploaded file's name.
func (r *Renderer) reportPath(fileName string) (path string) {
	timestamp := time.Now().UTC().Format("20060102_150405")
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	path = filepath.Join(r.reportsDir, fmt.Sprintf("%s_%s.pdf", base, timestamp))
	return path
}
