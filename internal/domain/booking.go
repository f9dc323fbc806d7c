package domain

// Booking is a reservation record. ID is assigned by the store and is an
// opaque string at this layer: the MySQL backend renders its auto-increment
// key, the Redis backend issues a timestamp-derived token.
type Booking struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Guests  int     `json:"guests"`
	DateIn  string  `json:"dateIn"`  // YYYY-MM-DD
	DateOut string  `json:"dateOut"` // YYYY-MM-DD
	Price   float64 `json:"price"`
}

// Fields carries the seven business attributes of a booking to be created.
// Dates must already be normalized to YYYY-MM-DD.
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Guests  int
	DateIn  string
	DateOut string
	Price   float64
}

// Patch is a partial field set for updates; nil means "leave unchanged".
type Patch struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email"`
	Phone   *string  `json:"phone"`
	Guests  *int     `json:"guests"`
	DateIn  *string  `json:"dateIn"`
	DateOut *string  `json:"dateOut"`
	Price   *float64 `json:"price"`
}

func (p Patch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Guests == nil && p.DateIn == nil && p.DateOut == nil && p.Price == nil
}

// DateRange is the booked-dates projection used by the availability calendar.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CaptureRequest describes a single synchronous card charge.
type CaptureRequest struct {
	Amount      int64 // smallest currency unit
	Currency    string
	Description string
	SourceToken string
}

// Charge is the gateway's confirmation of a captured payment.
type Charge struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}
