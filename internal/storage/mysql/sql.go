package mysql

const insertBookingSQL = `
INSERT INTO bookings (name, email, phone, guests, date_in, date_out, price)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Dates come back pre-formatted so both backends hand the same strings to
// the HTTP layer.
const selectDateRangesSQL = `
SELECT DATE_FORMAT(date_in, '%Y-%m-%d'), DATE_FORMAT(date_out, '%Y-%m-%d')
FROM bookings
`

const selectAllSQL = `
SELECT
  id,
  name,
  email,
  phone,
  guests,
  DATE_FORMAT(date_in, '%Y-%m-%d'),
  DATE_FORMAT(date_out, '%Y-%m-%d'),
  price
FROM bookings
`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = ?)`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

// The UPDATE statement is assembled per request from the patch fields; see
// Store.Update. Prefix and suffix kept here with the rest of the SQL.
const (
	updateBookingPrefix = "UPDATE bookings SET "
	updateBookingSuffix = " WHERE id = ?"
)
