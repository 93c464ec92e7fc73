package dto

import "nomad-nest/internal/models"

type AddExpenseRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Category string  `json:"category"`
}

type AddExpenseResponse struct {
	Message   string `json:"message"`
	ExpenseID string `json:"expense_id"`
}

// UpdateExpenseRequest updates only the fields present in the body.
type UpdateExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Currency *string  `json:"currency"`
}

type ExpenseDetailsResponse struct {
	ExpenseID  string  `json:"expense_id"`
	EntryID    string  `json:"entry_id"`
	UserID     string  `json:"user_id"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	EntryTitle string  `json:"entry_title"`
	Location   string  `json:"location"`
	CreatedAt  string  `json:"created_at"`
	Author     *Author `json:"author,omitempty"`
}

type ExpensesResponse struct {
	Expenses []ExpenseDetailsResponse `json:"expenses"`
	Count    int                      `json:"count"`
}

func NewExpenseDetailsResponse(exp *models.ExpenseDetails) ExpenseDetailsResponse {
	resp := ExpenseDetailsResponse{
		ExpenseID:  exp.ID,
		EntryID:    exp.EntryID,
		UserID:     exp.UserID,
		Category:   exp.Category,
		Amount:     exp.Amount,
		Currency:   exp.Currency,
		EntryTitle: exp.EntryTitle,
		Location:   exp.EntryLocation,
		CreatedAt:  formatTime(exp.EntryCreatedAt),
	}
	if exp.AuthorName != nil {
		resp.Author = &Author{
			Name:       *exp.AuthorName,
			ProfilePic: exp.AuthorPic,
		}
	}
	return resp
}

func NewExpensesResponse(expenses []*models.ExpenseDetails) ExpensesResponse {
	resp := ExpensesResponse{Expenses: make([]ExpenseDetailsResponse, 0, len(expenses))}
	for _, exp := range expenses {
		resp.Expenses = append(resp.Expenses, NewExpenseDetailsResponse(exp))
	}
	resp.Count = len(resp.Expenses)
	return resp
}
