package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/sqlsource"
)

func TestDefinitionName_Table(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
		ok   bool
	}{
		{
			name: "plain create table",
			sql:  "CREATE TABLE sales.customer (id INTEGER);",
			want: "sales.customer",
			ok:   true,
		},
		{
			name: "or replace",
			sql:  "CREATE OR REPLACE TABLE sales.product (id INTEGER);",
			want: "sales.product",
			ok:   true,
		},
		{
			name: "extra whitespace and newlines",
			sql:  "CREATE\n\tOR   REPLACE\n  TABLE\n  sales.order\n(\n  id INTEGER\n);",
			want: "sales.order",
			ok:   true,
		},
		{
			name: "no header",
			sql:  "SELECT * FROM sales.customer;",
			ok:   false,
		},
		{
			name: "lowercase keywords do not match",
			sql:  "create table sales.customer (id INTEGER);",
			ok:   false,
		},
		{
			name: "view header is not a table header",
			sql:  "CREATE VIEW sales.v AS SELECT 1;",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefinitionName(tt.sql, sqlsource.KindTable)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefinitionName_View(t *testing.T) {
	sql := "CREATE OR REPLACE VIEW sales.customer_order_summary AS\nSELECT * FROM @@sales.customer@@;"
	got, ok := DefinitionName(sql, sqlsource.KindView)
	assert.True(t, ok)
	assert.Equal(t, "sales.customer_order_summary", got)
}

func TestDefinitionName_FirstMatchWins(t *testing.T) {
	sql := "CREATE VIEW first_view AS SELECT 1;\nCREATE VIEW second_view AS SELECT 2;"
	got, ok := DefinitionName(sql, sqlsource.KindView)
	assert.True(t, ok)
	assert.Equal(t, "first_view", got)
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "none",
			sql:  "SELECT 1;",
			want: []string{},
		},
		{
			name: "single",
			sql:  "SELECT * FROM @@sales.customer@@;",
			want: []string{"sales.customer"},
		},
		{
			name: "many in order of appearance",
			sql:  "SELECT * FROM @@sales.order@@ o JOIN @@sales.customer@@ c ON c.id = o.customer_id;",
			want: []string{"sales.order", "sales.customer"},
		},
		{
			name: "duplicates kept",
			sql:  "SELECT * FROM @@sales.order@@ UNION ALL SELECT * FROM @@sales.order@@;",
			want: []string{"sales.order", "sales.order"},
		},
		{
			name: "uppercase identifiers are not references",
			sql:  "SELECT * FROM @@SALES.CUSTOMER@@;",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, References(tt.sql))
		})
	}
}
