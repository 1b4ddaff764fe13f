package analyzer

import "fmt"

// Notification is the {score, status, details} triple handed to the
// notification collaborator for composing a user-facing message.
type Notification struct {
	Score   float64 `json:"score"`
	Status  string  `json:"status"`
	Details string  `json:"details"`
}

// ComposeNotification builds the notification payload for a completed
// analysis.
func ComposeNotification(rec Record) (n Notification) {
	n = Notification{
		Score:  rec.OverallScore,
		Status: rec.ComplianceStatus,
		Details: fmt.Sprintf(
			"Your policy document %q scored %.1f%% and was assessed as %s. The full report is available at %s.",
			rec.FileName, rec.OverallScore, rec.ComplianceStatus, rec.PDFReport),
	}
	return n
}
