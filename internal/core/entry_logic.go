package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultReference is recorded when an entry is submitted without a reference.
const DefaultReference = "-"

var (
	ErrMissingField   = errors.New("field is required")
	ErrSameAccount    = errors.New("debit and credit accounts must be different")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrUnknownAccount = errors.New("account code not found in chart of accounts")
)

// ValidationError reports which form field rejected a journal entry submission.
// It wraps one of the Err* sentinels so callers can use errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EntryForm is the raw journal entry form as submitted by a user.
// Amount stays a string until validation parses it.
type EntryForm struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Description   string `json:"description" validate:"required"`
	Reference     string `json:"reference"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Amount        string `json:"amount" validate:"required"`
}

// Normalize trims whitespace from every field and applies the reference placeholder.
func (f *EntryForm) Normalize() {
	f.Date = strings.TrimSpace(f.Date)
	f.Description = strings.TrimSpace(f.Description)
	f.Reference = strings.TrimSpace(f.Reference)
	f.DebitAccount = strings.TrimSpace(f.DebitAccount)
	f.CreditAccount = strings.TrimSpace(f.CreditAccount)
	f.Amount = strings.TrimSpace(f.Amount)

	if f.Reference == "" {
		f.Reference = DefaultReference
	}
}

// Validate checks the form and returns the parsed amount.
// Account presence is checked first, then debit != credit, so a same-account
// submission is rejected regardless of the remaining fields.
func (f EntryForm) Validate(chart *ChartOfAccounts) (decimal.Decimal, error) {
	if f.DebitAccount == "" {
		return decimal.Zero, &ValidationError{Field: "debit_account", Err: ErrMissingField}
	}
	if f.CreditAccount == "" {
		return decimal.Zero, &ValidationError{Field: "credit_account", Err: ErrMissingField}
	}
	if f.DebitAccount == f.CreditAccount {
		return decimal.Zero, &ValidationError{Field: "credit_account", Err: ErrSameAccount}
	}

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "datetime" {
				return decimal.Zero, &ValidationError{Field: fe.Field(), Err: ErrInvalidDate}
			}
			return decimal.Zero, &ValidationError{Field: fe.Field(), Err: ErrMissingField}
		}
		return decimal.Zero, fmt.Errorf("entry validation failed: %w", err)
	}

	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}

	if chart != nil {
		if _, ok := chart.Lookup(f.DebitAccount); !ok {
			return decimal.Zero, &ValidationError{Field: "debit_account", Err: ErrUnknownAccount}
		}
		if _, ok := chart.Lookup(f.CreditAccount); !ok {
			return decimal.Zero, &ValidationError{Field: "credit_account", Err: ErrUnknownAccount}
		}
	}

	return amount, nil
}
