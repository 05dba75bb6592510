package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// fakeDriver records executed statements and answers with a scripted
// affected-row count, so the guarded updates can be checked without a
// MySQL server.
type fakeDriver struct{ conn *fakeConn }

func (d *fakeDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

type fakeConn struct {
	queries []string
	args    [][]driver.Value
	rows    int64
}

func (c *fakeConn) Prepare(q string) (driver.Stmt, error) { return &fakeStmt{c: c, q: q}, nil }
func (c *fakeConn) Close() error                          { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)             { return nil, errors.New("not supported") }

type fakeStmt struct {
	c *fakeConn
	q string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }
func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.c.queries = append(s.c.queries, s.q)
	s.c.args = append(s.c.args, args)
	return driver.RowsAffected(s.c.rows), nil
}
func (s *fakeStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("not supported")
}

func newFakeDB(t *testing.T, rowsAffected int64) (*sql.DB, *fakeConn) {
	t.Helper()
	conn := &fakeConn{rows: rowsAffected}
	name := "fake-" + t.Name()
	sql.Register(name, &fakeDriver{conn: conn})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, conn
}

func TestReleaseAfterCleaningGuardsOnMaintenance(t *testing.T) {
	db, conn := newFakeDB(t, 1)
	repo := NewRoomRepo(db)

	released, err := repo.ReleaseAfterCleaning(context.Background(), 7)
	if err != nil {
		t.Fatalf("ReleaseAfterCleaning: %v", err)
	}
	if !released {
		t.Error("released = false, want true when a row matched")
	}
	if len(conn.queries) != 1 {
		t.Fatalf("executed %d statements, want 1", len(conn.queries))
	}
	if !strings.Contains(conn.queries[0], "AND status = ?") {
		t.Errorf("update is unguarded: %q", conn.queries[0])
	}
	args := conn.args[0]
	if len(args) != 3 {
		t.Fatalf("args = %v, want 3 values", args)
	}
	if args[0] != string(model.RoomAvailable) || args[2] != string(model.RoomMaintenance) {
		t.Errorf("args = %v, want release to %s only from %s",
			args, model.RoomAvailable, model.RoomMaintenance)
	}
}

func TestReleaseAfterCleaningKeepsOccupiedRoom(t *testing.T) {
	// zero rows affected means the room left MAINTENANCE already, e.g.
	// the next guest checked in on a same-day turnover; not an error
	db, _ := newFakeDB(t, 0)
	repo := NewRoomRepo(db)

	released, err := repo.ReleaseAfterCleaning(context.Background(), 7)
	if err != nil {
		t.Fatalf("ReleaseAfterCleaning: %v", err)
	}
	if released {
		t.Error("released = true, want false when no row matched")
	}
}
