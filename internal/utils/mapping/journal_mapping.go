package mapping

import (
	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/kopkas/coopledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		TenantID:        d.TenantID,
		JournalNumber:   d.JournalNumber,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		ReferenceType:   d.ReferenceType,
		ReferenceID:     d.ReferenceID,
		Status:          models.JournalStatus(d.Status),
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		TenantID:        m.TenantID,
		JournalNumber:   m.JournalNumber,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		Status:          domain.JournalStatus(m.Status),
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLine converts a domain Line to a model Line
func ToModelLine(d domain.Line) models.Line {
	return models.Line{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		Position:    d.Position,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainLine converts a model Line to a domain Line
func ToDomainLine(m models.Line) domain.Line {
	return domain.Line{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainLineSlice converts a slice of model Lines to domain Lines.
func ToDomainLineSlice(ms []models.Line) []domain.Line {
	ds := make([]domain.Line, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
