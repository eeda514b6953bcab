package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"
)

const (
	SavingDeposit     SavingTransactionType = "deposit"
	SavingWithdrawal  SavingTransactionType = "withdrawal"
	SavingTransferIn  SavingTransactionType = "transfer_in"
	SavingTransferOut SavingTransactionType = "transfer_out"
)

type (
	TransactionType       string
	Frequency             string
	BillStatus            string
	SavingTransactionType string

	Transaction struct {
		ID          int64           `json:"id"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
		Description string          `json:"description,omitempty"`
	}

	Bill struct {
		ID        int64      `json:"id"`
		Name      string     `json:"name"`
		Amount    Money      `json:"amount"`
		DueDate   Date       `json:"dueDate"`
		Recurring bool       `json:"recurring"`
		Frequency Frequency  `json:"frequency,omitempty"`
		Category  string     `json:"category"`
		Status    BillStatus `json:"status"`
		PaidDate  *Date      `json:"paidDate,omitempty"`
	}

	Budget struct {
		ID       int64     `json:"id"`
		Category string    `json:"category"`
		Limit    Money     `json:"budgetLimit"`
		Period   Frequency `json:"period"`
	}

	SavingsAccount struct {
		ID           int64     `json:"id"`
		Name         string    `json:"name"`
		AccountType  string    `json:"accountType"`
		Balance      Money     `json:"balance"`
		InterestRate *Money    `json:"interestRate,omitempty"` // annual percentage, e.g. 4.5
		Goal         *Money    `json:"goal,omitempty"`
		Description  string    `json:"description,omitempty"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	SavingTransaction struct {
		ID          int64                 `json:"id"`
		SavingID    int64                 `json:"savingId"`
		Type        SavingTransactionType `json:"type"`
		Amount      Money                 `json:"amount"`
		Description string                `json:"description,omitempty"`
		CreatedAt   time.Time             `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid type")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidLimit     = errors.New("invalid budget limit")
	ErrInvalidHorizon   = errors.New("invalid projection horizon")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillPaid, BillOverdue:
		return true
	}
	return false
}

func (s SavingTransactionType) Valid() bool {
	switch s {
	case SavingDeposit, SavingWithdrawal, SavingTransferIn, SavingTransferOut:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := b.DueDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Recurring && !b.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if b.Status != "" && !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !b.Limit.IsPositive() {
		return ErrInvalidLimit
	}
	if !b.Period.Valid() {
		return ErrInvalidFrequency
	}
	return nil
}

func (s SavingsAccount) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Goal != nil && !s.Goal.IsPositive() {
		return ErrInvalidAmount
	}
	if s.InterestRate != nil && s.InterestRate.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (t SavingTransaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
