package dto

import "time"

type BorrowRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	BorrowerName string `json:"borrower_name" validate:"required,min=1,max=100"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
}

// BorrowingFilter carries the query-string options of GET /api/borrowings.
type BorrowingFilter struct {
	Status    string `form:"status" validate:"omitempty,oneof=Borrowed Returned"`
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
}

type BorrowingResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name"`
	BorrowerName string     `json:"borrower_name"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	BorrowDate   time.Time  `json:"borrow_date"`
	ReturnDate   *time.Time `json:"return_date"`
}

// BorrowingResult pairs the written record with the confirmation message.
type BorrowingResult struct {
	Message   string            `json:"message"`
	Borrowing BorrowingResponse `json:"borrowing"`
}
