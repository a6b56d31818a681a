package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acmebank/transactions/internal/storage"
)

// Transaction type names held in the reference data.
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// PostRequest carries the caller-supplied fields of a posting. On create the
// running balance is computed from the account; CurrentBalance is only read
// on update, where it is stored verbatim.
type PostRequest struct {
	AccountID      uint  `json:"account_id"`
	Amount         int64 `json:"amount"`
	CurrentBalance int64 `json:"current_balance"`
	Active         bool  `json:"active"`
}

type Service struct {
	store *storage.Database
}

func NewService(store *storage.Database) *Service {
	return &Service{store: store}
}

// typeNameFor classifies an amount at posting time: negative amounts are
// debits, everything else is a credit.
func typeNameFor(amount int64) string {
	if amount < 0 {
		return TypeDebit
	}
	return TypeCredit
}

// resolveRefs validates the request's reference data: an active transaction
// type matching the amount's sign, and the target account.
func resolveRefs(tx *storage.Database, req *PostRequest) (*storage.TransactionType, *storage.Account, error) {
	tt, err := tx.FindTransactionTypeByNameAndActive(typeNameFor(req.Amount), true)
	if err != nil {
		return nil, nil, err
	}
	if tt == nil {
		return nil, nil, ErrTransactionTypeNotFound
	}

	account, err := tx.FindAccountByID(req.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, ErrAccountNotFound
	}
	return tt, account, nil
}

// Create posts a new ledger entry. The stored running balance is the
// account's current balance plus the signed amount at call time; the account
// row itself is left untouched. Two concurrent creates against one account
// can therefore read the same starting balance; the store's transaction
// isolation is the only guard.
func (s *Service) Create(req *PostRequest) (*storage.Transaction, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	var created *storage.Transaction
	err := s.store.Transact(func(tx *storage.Database) error {
		tt, account, err := resolveRefs(tx, req)
		if err != nil {
			return err
		}

		rec := &storage.Transaction{
			Reference:         uuid.NewString(),
			AccountID:         req.AccountID,
			TransactionTypeID: tt.ID,
			Amount:            req.Amount,
			CurrentBalance:    account.CurrentBalance + req.Amount,
			Active:            req.Active,
		}
		if err := tx.SaveTransaction(rec); err != nil {
			if errors.Is(err, storage.ErrNoRowsAffected) {
				return ErrNotSaved
			}
			return err
		}
		created = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the mutable fields of an existing entry with the
// request's values. The running balance is taken verbatim from the request;
// identity, reference and creation time are preserved.
func (s *Service) Update(id uint, req *PostRequest) (*storage.Transaction, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if id == 0 {
		return nil, ErrInvalidID
	}

	var updated *storage.Transaction
	err := s.store.Transact(func(tx *storage.Database) error {
		existing, err := tx.FindTransactionByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrTransactionNotFound
		}

		tt, _, err := resolveRefs(tx, req)
		if err != nil {
			return err
		}

		next := *existing
		next.AccountID = req.AccountID
		next.TransactionTypeID = tt.ID
		next.Amount = req.Amount
		next.CurrentBalance = req.CurrentBalance
		next.Active = req.Active
		if err := tx.SaveTransaction(&next); err != nil {
			if errors.Is(err, storage.ErrNoRowsAffected) {
				return ErrNotSaved
			}
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry from storage. An unknown id is a no-op.
func (s *Service) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidID
	}
	return s.store.Transact(func(tx *storage.Database) error {
		existing, err := tx.FindTransactionByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		return tx.DeleteTransactionByID(id)
	})
}

// Deactivate flips an entry's active flag off and re-saves it, keeping the
// row for audit reads.
func (s *Service) Deactivate(id uint) error {
	if id == 0 {
		return ErrInvalidID
	}
	return s.store.Transact(func(tx *storage.Database) error {
		existing, err := tx.FindTransactionByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrTransactionNotFound
		}

		next := *existing
		next.Active = false
		if err := tx.SaveTransaction(&next); err != nil {
			if errors.Is(err, storage.ErrNoRowsAffected) {
				return ErrNotSaved
			}
			return err
		}
		return nil
	})
}

func (s *Service) FindByID(id uint) (*storage.Transaction, error) {
	return s.store.FindTransactionByID(id)
}

func (s *Service) FindByAccountAndCreatedAtBetween(accountID uint, start, end time.Time) ([]storage.Transaction, error) {
	return s.store.FindTransactionsByAccountAndCreatedAtBetween(accountID, start, end)
}

func (s *Service) FindAll() ([]storage.Transaction, error) {
	return s.store.AllTransactions()
}

func (s *Service) FindByActive(active bool) ([]storage.Transaction, error) {
	return s.store.TransactionsByActive(active)
}
