package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"tracer-web/internal/models"
)

// ListReports returns every report the token may see.
func (cn *Conn) ListReports(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	err := cn.do(ctx, call{op: "list_reports", method: http.MethodGet, path: "/reports", out: &out})
	return out, err
}

// ListMyReports returns the reports filed by the signed-in user.
func (cn *Conn) ListMyReports(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	err := cn.do(ctx, call{op: "list_my_reports", method: http.MethodGet, path: "/reports/current-user", out: &out})
	return out, err
}

func (cn *Conn) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	var out models.Report
	if err := cn.do(ctx, call{op: "get_report", method: http.MethodGet, path: fmt.Sprintf("/reports/%d", id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReport files a damage report with its media as media[] parts.
func (cn *Conn) CreateReport(ctx context.Context, in models.ReportInput, media []*multipart.FileHeader) error {
	uploads := make([]Upload, 0, len(media))
	for _, fh := range media {
		uploads = append(uploads, Upload{Field: "media[]", File: fh})
	}
	return cn.do(ctx, call{
		op:     "create_report",
		method: http.MethodPost,
		path:   "/reports",
		fields: map[string]string{
			"asset_id":    strconv.FormatUint(uint64(in.AssetID), 10),
			"description": in.Description,
		},
		uploads: uploads,
	})
}

type statusRequest struct {
	Status models.ReportStatus `json:"status"`
}

func (cn *Conn) UpdateReportStatus(ctx context.Context, id uint, status models.ReportStatus) error {
	return cn.do(ctx, call{
		op:     "update_report_status",
		method: http.MethodPatch,
		path:   fmt.Sprintf("/reports/%d", id),
		body:   statusRequest{Status: status},
	})
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (cn *Conn) SubmitFeedback(ctx context.Context, id uint, feedback string) error {
	return cn.do(ctx, call{
		op:     "submit_feedback",
		method: http.MethodPost,
		path:   fmt.Sprintf("/reports/%d/feedback", id),
		body:   feedbackRequest{Feedback: feedback},
	})
}

type issueRequest struct {
	Issue string `json:"issue"`
}

func (cn *Conn) CreateIssue(ctx context.Context, reportID uint, issue string) error {
	return cn.do(ctx, call{
		op:     "create_issue",
		method: http.MethodPost,
		path:   fmt.Sprintf("/reports/%d/issues", reportID),
		body:   issueRequest{Issue: issue},
	})
}

type issueResponseRequest struct {
	IssueID  uint   `json:"issue_id"`
	Response string `json:"response"`
}

func (cn *Conn) RespondIssue(ctx context.Context, reportID, issueID uint, response string) error {
	return cn.do(ctx, call{
		op:     "respond_issue",
		method: http.MethodPost,
		path:   fmt.Sprintf("/reports/%d/issue-responses", reportID),
		body:   issueResponseRequest{IssueID: issueID, Response: response},
	})
}
