// Package jsonfile stores the ledger as a single JSON document on disk.
package jsonfile

import (
	"bank-ledger/internal/bank"
	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/domain/employee"
	"bank-ledger/internal/pkg/apperrors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
)

type Store struct {
	path   string
	logger *slog.Logger
}

var _ bank.Repository = (*Store)(nil)

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "jsonfile"), slog.String("path", path)),
	}
}

func (s *Store) Path() string { return s.path }

// Load reads the ledger document. A missing file yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (bank.Snapshot, error) {
	empty := bank.Snapshot{Customers: []*customer.Customer{}, Employees: []*employee.Employee{}}
	if err := ctx.Err(); err != nil {
		return empty, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.InfoContext(ctx, "Data file not found, starting with an empty ledger")
			return empty, nil
		}
		s.logger.ErrorContext(ctx, "Failed to read data file", slog.Any("error", err))
		return empty, apperrors.WrapPersistenceError(err, "failed to read data file")
	}

	// The whole file must be exactly one JSON document; trailing content is an error.
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.ErrorContext(ctx, "Failed to decode data file", slog.Any("error", err))
		return empty, apperrors.WrapPersistenceError(err, "failed to decode data file")
	}

	snap, err := fromDocument(doc)
	if err != nil {
		s.logger.ErrorContext(ctx, "Data file contains invalid records", slog.Any("error", err))
		return empty, apperrors.WrapPersistenceError(err, "invalid data file")
	}

	s.logger.InfoContext(ctx, "Loaded ledger",
		slog.Int("customers", len(snap.Customers)),
		slog.Int("employees", len(snap.Employees)))
	return snap, nil
}

// Save overwrites the data file with snap. The document is written to a
// sibling .tmp file first and renamed into place.
func (s *Store) Save(ctx context.Context, snap bank.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := writeDocument(tmp, toDocument(snap)); err != nil {
		_ = os.Remove(tmp)
		s.logger.ErrorContext(ctx, "Failed to write data file", slog.Any("error", err))
		return apperrors.WrapPersistenceError(err, "failed to write data file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		s.logger.ErrorContext(ctx, "Failed to replace data file", slog.Any("error", err))
		return apperrors.WrapPersistenceError(err, "failed to replace data file")
	}

	s.logger.InfoContext(ctx, "Saved ledger",
		slog.Int("customers", len(snap.Customers)),
		slog.Int("employees", len(snap.Employees)))
	return nil
}

func writeDocument(path string, doc document) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return f.Sync()
}

func toDocument(snap bank.Snapshot) document {
	doc := document{
		Customers: make([]customerRecord, 0, len(snap.Customers)),
		Employees: make([]employeeRecord, 0, len(snap.Employees)),
	}
	for _, c := range snap.Customers {
		rec := customerRecord{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Address:   c.Address,
			Accounts:  make([]accountRecord, 0, len(c.Accounts)),
		}
		for _, a := range c.Accounts {
			rec.Accounts = append(rec.Accounts, accountRecord{
				AccountType:   string(a.Type()),
				Balance:       amount(a.Balance()),
				AccountNumber: a.Number(),
			})
		}
		doc.Customers = append(doc.Customers, rec)
	}
	for _, e := range snap.Employees {
		doc.Employees = append(doc.Employees, employeeRecord{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			EmployeeID: e.EmployeeID,
			Position:   e.Position,
		})
	}
	return doc
}

func fromDocument(doc document) (bank.Snapshot, error) {
	snap := bank.Snapshot{
		Customers: make([]*customer.Customer, 0, len(doc.Customers)),
		Employees: make([]*employee.Employee, 0, len(doc.Employees)),
	}

	numbers := make(map[string]struct{})
	for i, rec := range doc.Customers {
		c := &customer.Customer{
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Address:   rec.Address,
			Accounts:  make([]*account.Account, 0, len(rec.Accounts)),
		}
		for j, ar := range rec.Accounts {
			acc, err := account.Restore(account.Type(ar.AccountType), decimal.Decimal(ar.Balance), ar.AccountNumber)
			if err != nil {
				return snap, fmt.Errorf("customer %d account %d: %w", i, j, err)
			}
			if _, dup := numbers[acc.Number()]; dup {
				return snap, fmt.Errorf("customer %d account %d: duplicate account number %q", i, j, acc.Number())
			}
			numbers[acc.Number()] = struct{}{}
			c.AddAccount(acc)
		}
		snap.Customers = append(snap.Customers, c)
	}

	ids := make(map[string]struct{})
	for i, rec := range doc.Employees {
		emp, err := employee.NewEmployee(rec.FirstName, rec.LastName, rec.EmployeeID, rec.Position)
		if err != nil {
			return snap, fmt.Errorf("employee %d: %w", i, err)
		}
		if _, dup := ids[emp.EmployeeID]; dup {
			return snap, fmt.Errorf("employee %d: duplicate employee id %q", i, emp.EmployeeID)
		}
		ids[emp.EmployeeID] = struct{}{}
		snap.Employees = append(snap.Employees, emp)
	}
	return snap, nil
}
