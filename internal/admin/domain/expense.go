package domain

import "time"

type ExpenseCategory string

const (
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseUtility     ExpenseCategory = "utility"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseSalary, ExpenseUtility, ExpenseMaintenance, ExpenseSupplies, ExpenseOther:
		return true
	}
	return false
}

// Expense is money a hotel spent, in minor units (cents). IncurredOn is the
// day it is booked against; reports bucket by it.
type Expense struct {
	ID          string
	HotelID     string
	Category    ExpenseCategory
	Amount      int64
	IncurredOn  time.Time
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// ExpenseFilter selects expenses. Empty fields do not filter; From is
// inclusive and To exclusive.
type ExpenseFilter struct {
	HotelID  string
	Category ExpenseCategory
	From     time.Time
	To       time.Time
	Limit    int
}

// ReportPeriod bounds a financial report. Zero ends are open.
type ReportPeriod struct {
	HotelID string
	From    time.Time
	To      time.Time
}

// HotelReport compares one hotel's booking revenue with its expenses.
// Cancelled bookings earn nothing.
type HotelReport struct {
	HotelID      string
	Revenue      int64
	Expenses     int64
	BookingCount int
	ExpenseCount int
}

func (r HotelReport) Profit() int64 { return r.Revenue - r.Expenses }
