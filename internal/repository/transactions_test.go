package repository

import "testing"

func TestBuildTransactionWhereNoFilters(t *testing.T) {
	where, args := buildTransactionWhere(TransactionFilter{})
	if where != "1=1" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildTransactionWhereIgnoresBogusType(t *testing.T) {
	where, args := buildTransactionWhere(TransactionFilter{Type: "transfer"})
	if where != "1=1" {
		t.Fatalf("bogus type must be ignored, where = %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildTransactionWhereTypeAndRange(t *testing.T) {
	where, args := buildTransactionWhere(TransactionFilter{
		Type:      "income",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	want := "1=1 AND type = $1 AND date BETWEEN $2 AND $3"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if len(args) != 3 || args[0] != "income" || args[1] != "2026-01-01" || args[2] != "2026-01-31" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildTransactionWhereSingleBounds(t *testing.T) {
	where, args := buildTransactionWhere(TransactionFilter{StartDate: "2026-01-01"})
	if where != "1=1 AND date >= $1" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}

	where, args = buildTransactionWhere(TransactionFilter{EndDate: "2026-01-31"})
	if where != "1=1 AND date <= $1" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
}
