package ledger

import (
	"time"
)

// ReportRow is one transaction flattened together with its account and
// customer context. Rows are built per call and never persisted.
type ReportRow struct {
	AccountID      uint      `json:"account_id"`
	AccountType    string    `json:"account_type,omitempty"`
	Customer       string    `json:"customer"`
	TransactionID  uint      `json:"transaction_id"`
	Reference      string    `json:"reference"`
	Active         bool      `json:"active"`
	InitialBalance int64     `json:"initial_balance"`
	CurrentBalance int64     `json:"current_balance"`
	Date           time.Time `json:"date"`
}

// endOfDay extends t to the last instant of its calendar day, so the report
// range is inclusive of the whole end date.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Report assembles one row per transaction posted between start and the end
// of end's calendar day, across every account owned by customerID. Accounts
// whose account type is missing get a blank type name; accounts with no
// in-range transactions contribute no rows.
func (s *Service) Report(customerID uint, start, end time.Time) ([]ReportRow, error) {
	end = endOfDay(end)

	accounts, err := s.store.FindAccountsByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	rows := []ReportRow{}
	for _, account := range accounts {
		var typeName string
		at, err := s.store.FindAccountTypeByID(account.AccountTypeID)
		if err != nil {
			return nil, err
		}
		if at != nil {
			typeName = at.Name
		}

		customerName, err := s.store.CustomerDisplayName(account.CustomerID)
		if err != nil {
			return nil, err
		}

		transactions, err := s.store.FindTransactionsByAccountAndCreatedAtBetween(account.ID, start, end)
		if err != nil {
			return nil, err
		}

		for _, t := range transactions {
			rows = append(rows, ReportRow{
				AccountID:      account.ID,
				AccountType:    typeName,
				Customer:       customerName,
				TransactionID:  t.ID,
				Reference:      t.Reference,
				Active:         t.Active,
				InitialBalance: account.InitialBalance,
				CurrentBalance: t.CurrentBalance,
				Date:           t.CreatedAt,
			})
		}
	}
	return rows, nil
}
