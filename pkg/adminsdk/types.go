package adminsdk

import "time"

// ============================================================================
// Session
// ============================================================================

const (
	SessionStateUnknown       = "unknown"
	SessionStateAnonymous     = "anonymous"
	SessionStateAuthenticated = "authenticated"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

type Identity struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DisplayName     string `json:"displayName"`
	Role            string `json:"role"`
	AssignedHotelID string `json:"assignedHotelId,omitempty"`
}

// SessionResponse describes the console session. Token is only returned by
// login; Warning is set when the session could not be stored and will not
// survive a restart.
type SessionResponse struct {
	State    string    `json:"state"`
	Identity *Identity `json:"identity,omitempty"`
	Token    string    `json:"token,omitempty"`
	Warning  string    `json:"warning,omitempty"`
}

// ============================================================================
// Notifications
// ============================================================================

type Notification struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message,omitempty"`
	Severity string `json:"severity"`

	// CreatedAt is epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
	Read      bool  `json:"read"`
}

type AddNotificationRequest struct {
	Title    string `json:"title"              validate:"required,max=200"`
	Message  string `json:"message,omitempty"  validate:"max=2000"`
	Severity string `json:"severity,omitempty" validate:"omitempty,oneof=info success warning error"`
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}

// ============================================================================
// Customers
// ============================================================================

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name"              validate:"required,max=200"`
	Email   string `json:"email,omitempty"   validate:"omitempty,email,max=254"`
	Phone   string `json:"phone,omitempty"   validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=500"`
}

// UpdateCustomerRequest changes only the fields that are present.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"    validate:"omitempty,max=200"`
	Email   *string `json:"email,omitempty"   validate:"omitempty,email,max=254"`
	Phone   *string `json:"phone,omitempty"   validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type ListCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

// ============================================================================
// Bookings
// ============================================================================

const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking amounts are in minor currency units (cents).
type Booking struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customerId"`
	HotelID            string     `json:"hotelId"`
	RoomNumber         string     `json:"roomNumber,omitempty"`
	CheckIn            time.Time  `json:"checkIn"`
	CheckOut           *time.Time `json:"checkOut,omitempty"`
	RoomCharges        int64      `json:"roomCharges"`
	LaundryCharges     int64      `json:"laundryCharges"`
	RoomServiceCharges int64      `json:"roomServiceCharges"`
	OtherCharges       int64      `json:"otherCharges"`
	TotalAmount        int64      `json:"totalAmount"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// CreateBookingRequest has no total; the server computes it from the charges.
// HotelID may be left empty by a manager, who books into their own hotel.
type CreateBookingRequest struct {
	CustomerID         string     `json:"customerId"                   validate:"required"`
	HotelID            string     `json:"hotelId,omitempty"            validate:"max=64"`
	RoomNumber         string     `json:"roomNumber,omitempty"         validate:"max=20"`
	CheckIn            time.Time  `json:"checkIn"                      validate:"required"`
	CheckOut           *time.Time `json:"checkOut,omitempty"`
	RoomCharges        int64      `json:"roomCharges,omitempty"        validate:"min=0"`
	LaundryCharges     int64      `json:"laundryCharges,omitempty"     validate:"min=0"`
	RoomServiceCharges int64      `json:"roomServiceCharges,omitempty" validate:"min=0"`
	OtherCharges       int64      `json:"otherCharges,omitempty"       validate:"min=0"`
	Status             string     `json:"status,omitempty"             validate:"omitempty,oneof=active completed cancelled"`
	Notes              string     `json:"notes,omitempty"              validate:"max=2000"`
}

type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

// ============================================================================
// Expenses and reports
// ============================================================================

const (
	ExpenseCategorySalary      = "salary"
	ExpenseCategoryUtility     = "utility"
	ExpenseCategoryMaintenance = "maintenance"
	ExpenseCategorySupplies    = "supplies"
	ExpenseCategoryOther       = "other"
)

// Expense amounts are in minor currency units (cents). Date is YYYY-MM-DD.
type Expense struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotelId"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateExpenseRequest records an expense. HotelID may be left empty by a
// manager, whose hotel is used.
type CreateExpenseRequest struct {
	HotelID     string `json:"hotelId,omitempty"     validate:"max=64"`
	Category    string `json:"category"              validate:"required,oneof=salary utility maintenance supplies other"`
	Amount      int64  `json:"amount"                validate:"required,gt=0"`
	Date        string `json:"date"                  validate:"required,datetime=2006-01-02"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
	Total    int64     `json:"total"`
}

// HotelReport compares a hotel's booking revenue with its expenses.
type HotelReport struct {
	HotelID      string `json:"hotelId"`
	Revenue      int64  `json:"revenue"`
	Expenses     int64  `json:"expenses"`
	Profit       int64  `json:"profit"`
	BookingCount int    `json:"bookingCount"`
	ExpenseCount int    `json:"expenseCount"`
}

// HotelReportsResponse has one row per hotel and the chain-wide totals.
// From and To echo the requested period; To is exclusive.
type HotelReportsResponse struct {
	From   string        `json:"from,omitempty"`
	To     string        `json:"to,omitempty"`
	Hotels []HotelReport `json:"hotels"`
	Totals HotelReport   `json:"totals"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Session  string `json:"session"`
	Slots    string `json:"slots,omitempty"`
}
