package storage

import "time"

// Transaction is a posted ledger entry. CurrentBalance is the account
// balance snapshot taken when the entry was created, not a live value.
type Transaction struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference         string    `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	AccountID         uint      `gorm:"index;not null" json:"account_id"`
	TransactionTypeID uint      `gorm:"not null" json:"transaction_type_id"`
	Amount            int64     `gorm:"not null" json:"amount"`
	CurrentBalance    int64     `gorm:"not null" json:"current_balance"`
	Active            bool      `gorm:"not null;index" json:"active"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }

// Account balances are kept in the smallest currency unit.
type Account struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Number         string `gorm:"uniqueIndex;size:32;not null" json:"number"`
	CustomerID     uint   `gorm:"index;not null" json:"customer_id"`
	AccountTypeID  uint   `gorm:"not null" json:"account_type_id"`
	InitialBalance int64  `gorm:"not null" json:"initial_balance"`
	CurrentBalance int64  `gorm:"not null" json:"current_balance"`
	Active         bool   `gorm:"not null" json:"active"`
}

func (Account) TableName() string { return "accounts" }

type AccountType struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"size:64;not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`
}

func (AccountType) TableName() string { return "account_types" }

type Customer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"size:64;not null" json:"first_name"`
	LastName  string `gorm:"size:64;not null" json:"last_name"`
	Active    bool   `gorm:"not null" json:"active"`
}

func (Customer) TableName() string { return "customers" }

// TransactionType rows are reference data, seeded with DEBIT and CREDIT.
type TransactionType struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"uniqueIndex;size:16;not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`
}

func (TransactionType) TableName() string { return "transaction_types" }
