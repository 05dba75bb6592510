// Package repository is the raw-SQL data access layer.  Methods with a
// Tx suffix run inside a caller-owned transaction; the caller commits
// or rolls back.  Sentinel errors below let handlers map failures to
// HTTP responses without inspecting driver errors themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrRoomUnavailable is returned when a non-cancelled reservation
// already overlaps the requested date range for the room.  Handlers
// translate this into a 400 response.
var ErrRoomUnavailable = errors.New("room unavailable for requested dates")

// ErrSessionAlreadyOpen is returned when a cashier tries to open a
// second session while one is still OPEN.  The uniqueness is enforced
// by the database, so concurrent opens cannot both succeed.
var ErrSessionAlreadyOpen = errors.New("cashier already has an open session")

// ErrDuplicateTask is returned when a housekeeping task already exists
// for the same complaint reference.
var ErrDuplicateTask = errors.New("task already exists for this complaint")

// ErrConflict is returned when an update cannot proceed because the
// row changed state underneath the caller (e.g. closing an already
// closed session).  Handlers translate this into a 409 response.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (1062), the signal behind the unique-constraint sentinels above.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
