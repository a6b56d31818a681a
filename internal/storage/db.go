package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrNoRowsAffected is returned by SaveTransaction when the write completed
// without touching any row.
var ErrNoRowsAffected = errors.New("no rows affected")

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Transaction{}, &Account{}, &AccountType{}, &Customer{}, &TransactionType{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := seedTransactionTypes(db); err != nil {
		return nil, fmt.Errorf("failed to seed transaction types: %w", err)
	}

	return &Database{db: db}, nil
}

func seedTransactionTypes(db *gorm.DB) error {
	for _, name := range []string{"DEBIT", "CREDIT"} {
		tt := TransactionType{Name: name, Active: true}
		if err := db.Where(TransactionType{Name: name}).FirstOrCreate(&tt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Transact runs fn inside a single database transaction. Any error returned
// by fn rolls back every write made through the Database it receives.
func (d *Database) Transact(fn func(tx *Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Database{db: tx})
	})
}

// FindTransactionByID returns (nil, nil) when no record exists.
func (d *Database) FindTransactionByID(id uint) (*Transaction, error) {
	var t Transaction
	err := d.db.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", id, err)
	}
	return &t, nil
}

func (d *Database) FindTransactionsByAccountAndCreatedAtBetween(accountID uint, start, end time.Time) ([]Transaction, error) {
	var ts []Transaction
	err := d.db.
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, start, end).
		Order("created_at").
		Find(&ts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	return ts, nil
}

func (d *Database) AllTransactions() ([]Transaction, error) {
	var ts []Transaction
	if err := d.db.Order("id").Find(&ts).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return ts, nil
}

func (d *Database) TransactionsByActive(active bool) ([]Transaction, error) {
	var ts []Transaction
	if err := d.db.Where("active = ?", active).Order("id").Find(&ts).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by state: %w", err)
	}
	return ts, nil
}

// SaveTransaction inserts t when its ID is zero and updates the existing row
// otherwise. The store-assigned ID is written back onto t.
func (d *Database) SaveTransaction(t *Transaction) error {
	res := d.db.Save(t)
	if res.Error != nil {
		return fmt.Errorf("failed to save transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (d *Database) DeleteTransactionByID(id uint) error {
	if err := d.db.Delete(&Transaction{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

// FindTransactionTypeByNameAndActive returns (nil, nil) when no type with
// that name is in the requested state.
func (d *Database) FindTransactionTypeByNameAndActive(name string, active bool) (*TransactionType, error) {
	var tt TransactionType
	err := d.db.Where("name = ? AND active = ?", name, active).First(&tt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction type %q: %w", name, err)
	}
	return &tt, nil
}

// FindAccountByID returns (nil, nil) when no account exists.
func (d *Database) FindAccountByID(id uint) (*Account, error) {
	var a Account
	err := d.db.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", id, err)
	}
	return &a, nil
}

func (d *Database) FindAccountsByCustomer(customerID uint) ([]Account, error) {
	var as []Account
	if err := d.db.Where("customer_id = ?", customerID).Order("id").Find(&as).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts for customer %d: %w", customerID, err)
	}
	return as, nil
}

// FindAccountTypeByID returns (nil, nil) when no account type exists.
func (d *Database) FindAccountTypeByID(id uint) (*AccountType, error) {
	var at AccountType
	err := d.db.First(&at, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account type %d: %w", id, err)
	}
	return &at, nil
}

// CustomerDisplayName returns an empty string for an unknown customer.
func (d *Database) CustomerDisplayName(id uint) (string, error) {
	var c Customer
	err := d.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load customer %d: %w", id, err)
	}
	return c.FirstName + " " + c.LastName, nil
}

// SaveAccount exists for seeding and fixtures; the posting flow never writes
// accounts back (balances stay as snapshots on transactions).
func (d *Database) SaveAccount(a *Account) error {
	if err := d.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (d *Database) SaveAccountType(at *AccountType) error {
	if err := d.db.Save(at).Error; err != nil {
		return fmt.Errorf("failed to save account type: %w", err)
	}
	return nil
}

func (d *Database) SaveTransactionType(tt *TransactionType) error {
	if err := d.db.Save(tt).Error; err != nil {
		return fmt.Errorf("failed to save transaction type: %w", err)
	}
	return nil
}

func (d *Database) SaveCustomer(c *Customer) error {
	if err := d.db.Save(c).Error; err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}
