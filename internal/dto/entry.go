package dto

import "nomad-nest/internal/models"

// Author is the embedded snapshot of the entry's owner. It is omitted
// entirely when no matching user row exists.
type Author struct {
	Name       string  `json:"name"`
	ProfilePic *string `json:"profile_pic"`
}

type ExpenseLineResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type EntryResponse struct {
	EntryID   string                `json:"entry_id"`
	UserID    string                `json:"user_id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Location  string                `json:"location"`
	Latitude  float64               `json:"latitude"`
	Longitude float64               `json:"longitude"`
	CreatedAt string                `json:"created_at"`
	Author    *Author               `json:"author,omitempty"`
	Photos    []string              `json:"photos"`
	Expenses  []ExpenseLineResponse `json:"expenses"`
}

type EntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

type CreateEntryResponse struct {
	Message   string   `json:"message"`
	EntryID   string   `json:"entry_id"`
	PhotoURLs []string `json:"photo_urls"`
	Expenses  []string `json:"expenses"`
	Warnings  []string `json:"warnings,omitempty"`
}

func NewEntryResponse(entry *models.EntryDetails) EntryResponse {
	resp := EntryResponse{
		EntryID:   entry.ID,
		UserID:    entry.UserID,
		Title:     entry.Title,
		Content:   entry.Content,
		Location:  entry.Location,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
		CreatedAt: formatTime(entry.CreatedAt),
		Photos:    entry.PhotoURLs,
		Expenses:  make([]ExpenseLineResponse, 0, len(entry.Expenses)),
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	for _, line := range entry.Expenses {
		resp.Expenses = append(resp.Expenses, ExpenseLineResponse{
			Category: line.Category,
			Amount:   line.Amount,
			Currency: line.Currency,
		})
	}
	if entry.AuthorName != nil {
		resp.Author = &Author{
			Name:       *entry.AuthorName,
			ProfilePic: entry.AuthorPic,
		}
	}
	return resp
}

func NewEntriesResponse(entries []*models.EntryDetails) EntriesResponse {
	resp := EntriesResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, NewEntryResponse(entry))
	}
	resp.Count = len(resp.Entries)
	return resp
}
