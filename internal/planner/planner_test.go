package planner

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/depgraph"
	"github.com/thomascjohnson/analytical-datastore-change-management/internal/sqlsource"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tableDoc(path, sql string) sqlsource.Document {
	return sqlsource.Document{Path: path, Kind: sqlsource.KindTable, SQL: sql}
}

func viewDoc(path, sql string) sqlsource.Document {
	return sqlsource.Document{Path: path, Kind: sqlsource.KindView, SQL: sql}
}

func salesFixture() (tables, views []sqlsource.Document) {
	tables = []sqlsource.Document{
		tableDoc("tables/customer.sql", "CREATE TABLE sales.customer (id INTEGER);"),
		tableDoc("tables/product.sql", "CREATE TABLE sales.product (id INTEGER);"),
		tableDoc("tables/order.sql", "CREATE TABLE sales.order (id INTEGER);"),
	}
	views = []sqlsource.Document{
		viewDoc("views/customer_order_summary.sql",
			"CREATE VIEW sales.customer_order_summary AS\n"+
				"SELECT * FROM @@sales.customer@@ c JOIN @@sales.order@@ o ON o.customer_id = c.id;"),
		viewDoc("views/product_sales_overview.sql",
			"CREATE VIEW sales.product_sales_overview AS\n"+
				"SELECT * FROM @@sales.product@@ p JOIN @@sales.order@@ o ON o.product_id = p.id;"),
		viewDoc("views/customer_order_total_percentage.sql",
			"CREATE VIEW sales.customer_order_total_percentage AS\n"+
				"SELECT * FROM @@sales.customer_order_summary@@ s JOIN @@sales.product_sales_overview@@ v ON 1=1;"),
	}
	return tables, views
}

func TestBuildGraph_SalesScenario(t *testing.T) {
	tables, views := salesFixture()
	graph := BuildGraph(tables, views, discardLogger())

	// 3 views + 3 referenced tables.
	assert.Equal(t, 6, graph.NodeCount())

	customer, ok := graph.GetNode("sales.customer")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindTable, customer.Kind)
	assert.Equal(t, "blue", customer.Color)

	summary, ok := graph.GetNode("sales.customer_order_summary")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindView, summary.Kind)
	assert.Equal(t, "red", summary.Color)

	// Edges run dependency -> dependent.
	assert.Contains(t, graph.GetChildren("sales.customer"), "sales.customer_order_summary")
	assert.Contains(t, graph.GetParents("sales.customer_order_total_percentage"), "sales.customer_order_summary")
}

func TestDeploymentOrder_SalesScenario(t *testing.T) {
	tables, views := salesFixture()
	graph := BuildGraph(tables, views, discardLogger())

	order, err := DeploymentOrder(graph)
	require.NoError(t, err)

	position := make(map[string]int)
	for i, name := range order {
		position[name] = i
	}

	require.Contains(t, position, "sales.customer_order_summary")
	require.Contains(t, position, "sales.product_sales_overview")
	require.Contains(t, position, "sales.customer_order_total_percentage")

	assert.Less(t, position["sales.customer_order_summary"], position["sales.customer_order_total_percentage"])
	assert.Less(t, position["sales.product_sales_overview"], position["sales.customer_order_total_percentage"])

	// Tables never appear in the report.
	assert.NotContains(t, order, "sales.customer")
	assert.NotContains(t, order, "sales.product")
	assert.NotContains(t, order, "sales.order")
}

func TestDeploymentOrder_Deterministic(t *testing.T) {
	tables, views := salesFixture()

	first, err := DeploymentOrder(BuildGraph(tables, views, discardLogger()))
	require.NoError(t, err)
	second, err := DeploymentOrder(BuildGraph(tables, views, discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildGraph_TableIdentityWinsOverSourceList(t *testing.T) {
	tables := []sqlsource.Document{
		tableDoc("tables/customer.sql", "CREATE TABLE sales.customer (id INTEGER);"),
	}
	// A document from the view list defining a known table name.
	views := []sqlsource.Document{
		viewDoc("views/customer.sql", "CREATE VIEW sales.customer AS SELECT 1;"),
		viewDoc("views/v.sql", "CREATE VIEW sales.v AS SELECT * FROM @@sales.customer@@;"),
	}

	graph := BuildGraph(tables, views, discardLogger())

	node, ok := graph.GetNode("sales.customer")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindTable, node.Kind)

	order, err := DeploymentOrder(graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales.v"}, order)
}

func TestBuildGraph_SkipsDocumentWithoutHeader(t *testing.T) {
	views := []sqlsource.Document{
		viewDoc("views/broken.sql", "SELECT * FROM somewhere;"),
		viewDoc("views/ok.sql", "CREATE VIEW sales.ok AS SELECT 1;"),
	}

	graph := BuildGraph(nil, views, discardLogger())

	assert.Equal(t, 1, graph.NodeCount())
	_, ok := graph.GetNode("sales.ok")
	assert.True(t, ok)
}

func TestDeploymentOrder_SelfReferenceFails(t *testing.T) {
	views := []sqlsource.Document{
		viewDoc("views/loop.sql", "CREATE VIEW sales.loop AS SELECT * FROM @@sales.loop@@;"),
	}

	graph := BuildGraph(nil, views, discardLogger())
	order, err := DeploymentOrder(graph)

	require.Error(t, err)
	assert.Nil(t, order)

	var cycleErr *depgraph.CyclicDependencyError
	assert.True(t, errors.As(err, &cycleErr))
}

func TestDeploymentOrder_MutualCycleFails(t *testing.T) {
	views := []sqlsource.Document{
		viewDoc("views/a.sql", "CREATE VIEW sales.a AS SELECT * FROM @@sales.b@@;"),
		viewDoc("views/b.sql", "CREATE VIEW sales.b AS SELECT * FROM @@sales.a@@;"),
	}

	graph := BuildGraph(nil, views, discardLogger())
	_, err := DeploymentOrder(graph)

	var cycleErr *depgraph.CyclicDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.NotEmpty(t, cycleErr.Path)
}

func TestDeploymentOrder_DuplicateReferencesAreIdempotent(t *testing.T) {
	views := []sqlsource.Document{
		viewDoc("views/base.sql", "CREATE VIEW sales.base AS SELECT 1;"),
		viewDoc("views/twice.sql",
			"CREATE VIEW sales.twice AS SELECT * FROM @@sales.base@@ UNION ALL SELECT * FROM @@sales.base@@;"),
	}

	graph := BuildGraph(nil, views, discardLogger())
	assert.Equal(t, 1, graph.EdgeCount())

	order, err := DeploymentOrder(graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales.base", "sales.twice"}, order)
}

func TestInventory(t *testing.T) {
	tables, views := salesFixture()

	objects := Inventory(tables, views)
	require.Len(t, objects, 6)

	assert.Equal(t, "sales.customer", objects[0].Name)
	assert.Equal(t, "table", objects[0].Kind)
	assert.Empty(t, objects[0].DependsOn)

	summary := objects[3]
	assert.Equal(t, "sales.customer_order_summary", summary.Name)
	assert.Equal(t, "view", summary.Kind)
	assert.Equal(t, []string{"sales.customer", "sales.order"}, summary.DependsOn)
}
