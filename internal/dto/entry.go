package dto

import (
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const entryDateFormat = "2006-01-02"

// UpdateEntryRequest defines a partial update of an entry's editable fields.
// Nil fields are left untouched. Amounts arrive as strings from the dashboard
// cells and are leniently coerced: non-numeric input becomes 0 rather than a
// rejection. The lock flag is not part of this request; it has its own toggle
// operation.
type UpdateEntryRequest struct {
	Supplement  *string `json:"supplement,omitempty"`
	Entry       *string `json:"entry,omitempty"`
	Exit        *string `json:"exit,omitempty"`
	Payment     *string `json:"payment,omitempty"`
	Delivery    *string `json:"delivery,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateEntryRequest) Empty() bool {
	return r.Supplement == nil && r.Entry == nil && r.Exit == nil &&
		r.Payment == nil && r.Delivery == nil && r.Description == nil
}

// EntryResponse defines the data returned for a raw (unfolded) entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	MethodID    string          `json:"methodID"`
	EntryDate   string          `json:"entryDate"` // YYYY-MM-DD
	Supplement  decimal.Decimal `json:"supplement"`
	Entry       decimal.Decimal `json:"entry"`
	Exit        decimal.Decimal `json:"exit"`
	Payment     decimal.Decimal `json:"payment"`
	Delivery    decimal.Decimal `json:"delivery"`
	Description string          `json:"description"`
	Locked      bool            `json:"locked"`
}

// ToEntryResponse converts a domain.LedgerEntry to an EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		MethodID:    e.MethodID,
		EntryDate:   e.EntryDate.Format(entryDateFormat),
		Supplement:  e.Supplement,
		Entry:       e.Entry,
		Exit:        e.Exit,
		Payment:     e.Payment,
		Delivery:    e.Delivery,
		Description: e.Description,
		Locked:      e.Locked,
	}
}

// ListEntriesResponse is a page of raw entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries       []EntryResponse `json:"entries"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to its DTO form.
func ToListEntriesResponse(entries []domain.LedgerEntry, nextPageToken string) ListEntriesResponse {
	res := ListEntriesResponse{
		Entries:       make([]EntryResponse, len(entries)),
		NextPageToken: nextPageToken,
	}
	for i := range entries {
		res.Entries[i] = ToEntryResponse(&entries[i])
	}
	return res
}
