package models

import (
	"encoding/json"
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportOpen       ReportStatus = "open"
	ReportInProgress ReportStatus = "in_progress"
	ReportClosed     ReportStatus = "closed"
)

var ReportStatuses = []ReportStatus{ReportOpen, ReportInProgress, ReportClosed}

func (s ReportStatus) Valid() bool {
	return s == ReportOpen || s == ReportInProgress || s == ReportClosed
}

// Label renders "in_progress" as "in progress".
func (s ReportStatus) Label() string {
	return strings.Replace(string(s), "_", " ", 1)
}

type Report struct {
	ID          uint             `json:"id"`
	ReportCode  string           `json:"report_code"`
	Description string           `json:"description"`
	Status      ReportStatus     `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	Asset       *Asset           `json:"asset,omitempty"`
	User        *User            `json:"user,omitempty"`
	Media       []ReportMedia    `json:"report_media,omitempty"`
	Feedback    []ReportFeedback `json:"feedback,omitempty"`
	Responses   []ReportResponse `json:"responses,omitempty"`
	Issues      []ReportIssue    `json:"issues,omitempty"`
}

func (r Report) AssetName() string {
	if r.Asset == nil {
		return ""
	}
	return r.Asset.Name
}

func (r Report) ReporterName() string {
	if r.User == nil {
		return ""
	}
	return r.User.Name
}

// LatestFeedback is the technician feedback shown on the detail page.
func (r Report) LatestFeedback() string {
	if len(r.Feedback) == 0 {
		return ""
	}
	return r.Feedback[0].Feedback
}

type ReportMedia struct {
	ID       uint   `json:"id"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

func (m ReportMedia) IsVideo() bool { return m.FileType == "video" }

type ReportFeedback struct {
	ID       uint   `json:"id"`
	Feedback string `json:"feedback"`
}

// ReportResponse holds the AI diagnosis as a JSON document in Response.
type ReportResponse struct {
	ID       uint   `json:"id"`
	Response string `json:"response"`
}

type ReportIssue struct {
	ID        uint                  `json:"id"`
	Issue     string                `json:"issue"`
	CreatedAt time.Time             `json:"created_at"`
	Responses []ReportIssueResponse `json:"responses,omitempty"`
}

type ReportIssueResponse struct {
	ID       uint   `json:"id"`
	Response string `json:"response"`
}

// AIAnalysis is the decoded diagnosis. Every field is markdown.
type AIAnalysis struct {
	Summary        string `json:"Ringkasan Masalah"`
	Causes         string `json:"Identifikasi Kemungkinan Penyebab"`
	Recommendation string `json:"Rekomendasi Tindakan Perbaikan"`
	CostEstimate   string `json:"Estimasi Biaya Perbaikan"`
	Urgency        string `json:"Tingkat Urgensi"`
}

// Analysis decodes the first AI response. ok is false while the analysis is
// missing or not a JSON object.
func (r Report) Analysis() (AIAnalysis, bool) {
	var a AIAnalysis
	if len(r.Responses) == 0 || strings.TrimSpace(r.Responses[0].Response) == "" {
		return a, false
	}
	if err := json.Unmarshal([]byte(r.Responses[0].Response), &a); err != nil {
		return AIAnalysis{}, false
	}
	return a, true
}

// ReportInput is the text part of a new damage report.
type ReportInput struct {
	AssetID     uint
	Description string
}
