// Package sql wraps database/sql connections with their dialect name.
//
// The live drift check needs both a connection and the dialect of the
// database behind it, to pick the schema inspector and the default store
// types. A Driver carries the two together.
//
// # Opening a Connection
//
// Open selects the registered database/sql driver by dialect, so one of the
// driver packages must be imported by the program:
//
//	import _ "github.com/lib/pq"
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
// Aliases accepted by dialect.Parse ("postgresql", "sqlite3", "mariadb")
// are normalized. OpenDB wraps an existing *sql.DB.
//
// # Query Statistics
//
// StatsDriver counts the queries and execs issued through it and reports
// slow ones:
//
//	stats := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(250*time.Millisecond),
//	    sql.WithSlowQueryLog(logger),
//	)
//	warnings, err := schema.Drift(ctx, stats, model)
//	fmt.Println(stats.QueryStats().Stats())
package sql
