package catalog_repo

import (
	"strings"
	"testing"
	"time"

	"vitrin/internal/core/apperror"
)

type testEntity struct {
	ID       string `db:"id"`
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

func newTestRepo() *ScopedRepo[*testEntity] {
	return NewScopedRepo(
		nil,
		"test_table", "test",
		[]string{"name"},
		nil,
		func() *testEntity { return &testEntity{} },
	)
}

func TestScopedSelect_TenantPredicate(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.scopedSelect("t1").ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, tenant_id, name, is_active FROM test_table WHERE tenant_id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Errorf("args = %v, want [t1]", args)
	}
}

// Every repository in this package must scope reads to the tenant.
func TestAllRepos_ScopeToTenant(t *testing.T) {
	repos := map[string]interface {
		ToSql() (string, []any, error)
	}{
		"categories": NewCategoryRepo(nil).scopedSelect("t1"),
		"products":   NewProductRepo(nil).scopedSelect("t1"),
		"customers":  NewCustomerRepo(nil).scopedSelect("t1"),
	}

	for name, q := range repos {
		sql, args, err := q.ToSql()
		if err != nil {
			t.Fatalf("%s: ToSql failed: %v", name, err)
		}
		if !strings.Contains(sql, "tenant_id = $1") {
			t.Errorf("%s: query lacks tenant predicate: %s", name, sql)
		}
		if len(args) != 1 || args[0] != "t1" {
			t.Errorf("%s: args = %v, want [t1]", name, args)
		}
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"default", "", "name ASC", false},
		{"explicit", "name", "name ASC", false},
		{"descending", "-name", "name DESC", false},
		{"plus prefix", "+id", "id ASC", false},
		{"unknown column", "evil; DROP TABLE", "", true},
		{"not in whitelist", "password", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if !apperror.HasCode(err, apperror.CodeValidation) {
					t.Errorf("got %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteBack(t *testing.T) {
	e := &testEntity{TenantID: "t1", Name: "x"}
	now := time.Now().UTC()
	writeBack(e, "generated-id", now, 1)

	if e.ID != "generated-id" {
		t.Errorf("ID = %q, want generated-id", e.ID)
	}

	// An existing ID is never overwritten.
	writeBack(e, "other-id", now, 1)
	if e.ID != "generated-id" {
		t.Errorf("ID overwritten to %q", e.ID)
	}
}
