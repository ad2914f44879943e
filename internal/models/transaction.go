package models

// TransactionRecord is the normalized structure forwarded to the accounting API.
// Schema matches what the downstream endpoint accepts.
type TransactionRecord struct {
	Total float64 `json:"total"`
	Date  string  `json:"date"`
	Email string  `json:"email"`
	ID    string  `json:"id"`
	Items string  `json:"items"`
}
