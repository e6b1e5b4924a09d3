// sqldb/sqldb_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sqldb

import (
	"errors"
	"slices"
	"testing"
)

func TestRewritePlaceholders(t *testing.T) {
	text := "select a from t where x = :id and y like :region and z = 'a:b' and w = :id and c::text = ''"

	q, params := rewritePlaceholders(text, DialectQuestion)
	if expected := "select a from t where x = ? and y like ? and z = 'a:b' and w = ? and c::text = ''"; q != expected {
		t.Errorf("question dialect: got %q", q)
	}
	if !slices.Equal(params, []string{"id", "region", "id"}) {
		t.Errorf("question dialect params: got %v", params)
	}

	q, params = rewritePlaceholders(text, DialectDollar)
	if expected := "select a from t where x = $1 and y like $2 and z = 'a:b' and w = $1 and c::text = ''"; q != expected {
		t.Errorf("dollar dialect: got %q", q)
	}
	if !slices.Equal(params, []string{"id", "region"}) {
		t.Errorf("dollar dialect params: got %v", params)
	}
}

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Exec(`create table vor (vor_id integer primary key, ident varchar(5), region varchar(2),
		frequency integer, lonx double, laty double, geometry blob)`); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, row := range [][]any{
		{1, "JFK", "K6", 115900, -73.8, 40.6, []byte{1, 2, 3}},
		{2, "LGA", "K6", 113100, -73.9, 40.8, nil},
		{3, "JFK", "EG", 112000, 1.1, 51.2, nil},
	} {
		if err := db.Exec("insert into vor values (?, ?, ?, ?, ?, ?, ?)", row...); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return db
}

func TestQueryBindExecNext(t *testing.T) {
	db := openMemory(t)

	q, err := db.Prepare("select vor_id, ident, frequency, laty, geometry from vor where ident = :ident and region like :region order by vor_id")
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer q.Close()

	if err := q.Exec(); !errors.Is(err, ErrUnboundParameter) {
		t.Errorf("expected ErrUnboundParameter, got %v", err)
	}

	q.Bind(":ident", "JFK")
	q.Bind("region", "%")
	if err := q.Exec(); err != nil {
		t.Fatalf("exec: %v", err)
	}

	var ids []int
	for q.Next() {
		rec := q.Record()
		ids = append(ids, rec.Int("vor_id"))
		if rec.Int("vor_id") == 1 {
			if rec.String("ident") != "JFK" || rec.Int("frequency") != 115900 || rec.Float("laty") != 40.6 {
				t.Errorf("unexpected record values %v", rec.values)
			}
			if !slices.Equal(rec.Bytes("geometry"), []byte{1, 2, 3}) {
				t.Errorf("geometry: got %v", rec.Bytes("geometry"))
			}
		} else if !rec.IsNull("geometry") {
			t.Errorf("expected NULL geometry")
		}
	}
	if err := q.Err(); err != nil {
		t.Fatalf("iteration: %v", err)
	}
	q.Finish()
	if !slices.Equal(ids, []int{1, 3}) {
		t.Errorf("got ids %v", ids)
	}

	// Bound values persist; only rebind what changes.
	q.Bind("region", "EG")
	if err := q.Exec(); err != nil {
		t.Fatalf("exec: %v", err)
	}
	n := 0
	for q.Next() {
		n++
		if q.Record().Int("vor_id") != 3 {
			t.Errorf("unexpected row %v", q.Record().values)
		}
	}
	if n != 1 {
		t.Errorf("got %d rows, expected 1", n)
	}
}

func TestCountingDatabase(t *testing.T) {
	c := &CountingDatabase{Database: openMemory(t)}
	q, err := c.Prepare("select count(*) as n from vor where region = :region")
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	q.Bind("region", "K6")
	for range 3 {
		if err := q.Exec(); err != nil {
			t.Fatal(err)
		}
		if !q.Next() || q.Record().Int("n") != 2 {
			t.Errorf("unexpected count")
		}
		q.Finish()
	}
	if c.Execs != 3 {
		t.Errorf("got %d executions, expected 3", c.Execs)
	}

	q.Close()
	if err := q.Exec(); !errors.Is(err, ErrQueryClosed) {
		t.Errorf("expected ErrQueryClosed, got %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRecordConversions(t *testing.T) {
	r := NewRecord([]string{"i", "f", "s", "b", "n"}, []any{int64(42), 2.5, []byte("17"), true, nil})
	if r.Int("i") != 42 || r.Float("f") != 2.5 || r.Int("s") != 17 || r.String("i") != "42" {
		t.Errorf("conversion mismatch")
	}
	if !r.Bool("b") || r.Bool("n") || !r.IsNull("n") || !r.IsNull("missing") {
		t.Errorf("bool/null mismatch")
	}
	if r.Contains("missing") || !r.Contains("f") || r.IsEmpty() || !(Record{}).IsEmpty() {
		t.Errorf("contains/empty mismatch")
	}
}
