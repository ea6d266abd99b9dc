package amqp

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

// ExpenseRecordedMessage announces one appended expense.
type ExpenseRecordedMessage struct {
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds a message for e stamped with now.
func NewExpenseRecordedMessage(e core.Expense, now time.Time) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		Date:      e.Date,
		Category:  string(e.Category),
		Amount:    e.Amount,
		Note:      e.Note,
		Timestamp: now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
