package employee

import (
	"bank-ledger/internal/pkg/apperrors"
	"strings"
)

// Employee is not linked to any customer or account.
type Employee struct {
	FirstName  string
	LastName   string
	EmployeeID string
	Position   string
}

func NewEmployee(firstName, lastName, employeeID, position string) (*Employee, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, apperrors.NewValidationError("employee_id", "employee id cannot be empty")
	}
	return &Employee{
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		EmployeeID: employeeID,
		Position:   strings.TrimSpace(position),
	}, nil
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
