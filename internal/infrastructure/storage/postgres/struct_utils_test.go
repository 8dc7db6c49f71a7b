package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockTimestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type mockEntity struct {
	mockTimestamps
	ID       string `db:"id"`
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	Internal string `db:"-"`
	Untagged string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()

	expectedCols := []string{"created_at", "updated_at", "id", "tenant_id", "name"}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	e := mockEntity{
		mockTimestamps: mockTimestamps{CreatedAt: now, UpdatedAt: now},
		ID:             "e-1",
		TenantID:       "t-1",
		Name:           "Test Name",
		Internal:       "skipped",
	}

	m := StructToMap(e)

	assert.Equal(t, "e-1", m["id"])
	assert.Equal(t, "t-1", m["tenant_id"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.NotContains(t, m, "Internal")
	assert.NotContains(t, m, "Untagged")

	// Pointer receiver yields the same map.
	assert.Equal(t, m, StructToMap(&e))
}

type auditStamp struct {
	By string `db:"audit_by"`
}

type mockAudited struct {
	*auditStamp
	ID string `db:"id"`
}

func TestStructToMapEmbeddedPointer(t *testing.T) {
	m := StructToMap(mockAudited{ID: "e-1"})
	assert.Equal(t, "e-1", m["id"])
	assert.NotContains(t, m, "audit_by")

	m = StructToMap(mockAudited{auditStamp: &auditStamp{By: "u-1"}, ID: "e-1"})
	assert.Equal(t, "u-1", m["audit_by"])
}
