package dto

import (
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest defines one debit-or-credit line of a new journal.
type CreateLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalRequest defines the payload for creating a journal entry.
// When Post is true the journal is created and posted in one step; otherwise
// it is stored as a draft.
type CreateJournalRequest struct {
	TransactionDate time.Time           `json:"transactionDate" binding:"required"`
	Description     string              `json:"description" binding:"required"`
	ReferenceType   string              `json:"referenceType"`
	ReferenceID     string              `json:"referenceID"`
	Post            bool                `json:"post"`
	Lines           []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       string               `json:"journalID"`
	JournalNumber   string               `json:"journalNumber"`
	TransactionDate time.Time            `json:"transactionDate"`
	Description     string               `json:"description"`
	ReferenceType   string               `json:"referenceType,omitempty"`
	ReferenceID     string               `json:"referenceID,omitempty"`
	Status          domain.JournalStatus `json:"status"`
	TotalDebit      decimal.Decimal      `json:"totalDebit"`
	TotalCredit     decimal.Decimal      `json:"totalCredit"`
	PostedBy        *string              `json:"postedBy,omitempty"`
	PostedAt        *time.Time           `json:"postedAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	Lines           []LineResponse       `json:"lines,omitempty"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	Limit        int
	NextToken    *string
	IncludeLines bool
}

// ListJournalsResponse wraps a page of journals plus the continuation token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.Line to LineResponse.
func ToLineResponse(l *domain.Line) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToLineResponses converts a slice of domain.Line to []LineResponse.
func ToLineResponses(lines []domain.Line) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i := range lines {
		responses[i] = ToLineResponse(&lines[i])
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		JournalNumber:   j.JournalNumber,
		TransactionDate: j.TransactionDate,
		Description:     j.Description,
		ReferenceType:   j.ReferenceType,
		ReferenceID:     j.ReferenceID,
		Status:          j.Status,
		TotalDebit:      j.TotalDebit,
		TotalCredit:     j.TotalCredit,
		PostedBy:        j.PostedBy,
		PostedAt:        j.PostedAt,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = ToLineResponses(j.Lines)
	}
	return resp
}
