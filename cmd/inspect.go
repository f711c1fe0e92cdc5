package cmd

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var inspectSampleRows int

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Inspect the board database schema and stored entries",
	Long: `Inspect the raw contents of a board database.

This command prints:
  • Tables with their columns and row counts
  • The persisted board entries with pretty-printed JSON values

Examples:
  stickyboard inspect                      # Inspect the configured board
  stickyboard inspect /tmp/board.db        # Inspect a specific database
  stickyboard inspect --sample 0           # Schema only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.Storage.Path
		if len(args) > 0 {
			dbPath = args[0]
		}
		return inspectDatabase(cmd.OutOrStdout(), dbPath)
	},
}

func inspectDatabase(out io.Writer, dbPath string) error {
	db, err := internal.OpenDatabaseReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables, err := getTables(db)
	if err != nil {
		return fmt.Errorf("failed to get tables: %w", err)
	}

	if len(tables) == 0 {
		fmt.Fprintln(out, "⚠️  No tables found in database")
		return nil
	}

	fmt.Fprintf(out, "📋 Database: %s\n", dbPath)
	fmt.Fprintf(out, "📊 Found %d table(s)\n\n", len(tables))

	for _, table := range tables {
		if err := inspectTable(out, db, table); err != nil {
			fmt.Fprintf(out, "⚠️  Error inspecting table %s: %v\n", table, err)
		}
		fmt.Fprintln(out)
	}

	if inspectSampleRows > 0 {
		return showBoardEntries(out, db, inspectSampleRows)
	}
	return nil
}

func getTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// ColumnInfo describes one column of a table
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

func inspectTable(out io.Writer, db *sql.DB, table string) error {
	fmt.Fprintln(out, strings.Repeat("━", 40))
	fmt.Fprintf(out, "📦 Table: %s\n", table)
	fmt.Fprintln(out, strings.Repeat("━", 40))

	var rowCount int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&rowCount); err != nil {
		return fmt.Errorf("failed to get row count: %w", err)
	}
	fmt.Fprintf(out, "📊 Rows: %d\n", rowCount)

	columns, err := getTableSchema(db, table)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	fmt.Fprintln(out, "📐 Schema:")
	for _, col := range columns {
		var extra string
		if col.NotNull {
			extra += " NOT NULL"
		}
		if col.PrimaryKey {
			extra += " [PRIMARY KEY]"
		}
		fmt.Fprintf(out, "  • %s: %s%s\n", col.Name, col.Type, extra)
	}
	return nil
}

func getTableSchema(db *sql.DB, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			col          ColumnInfo
			cid          int
			notNull, pk  int
			defaultValue sql.NullString
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			continue
		}
		col.NotNull = notNull == 1
		col.PrimaryKey = pk == 1
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// showBoardEntries prints the persisted board keys with their JSON values
// indented, cutting each value after limit lines
func showBoardEntries(out io.Writer, db *sql.DB, limit int) error {
	pairs, err := internal.QueryBoardKV(db, "%")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "📄 Board entries (%d):\n", len(pairs))
	for _, pair := range pairs {
		fmt.Fprintf(out, "\n  %s:\n", pair.Key)
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(pair.Value), "", "  "); err != nil {
			fmt.Fprintf(out, "    %s (not JSON)\n", truncate(pair.Value, 200))
			continue
		}
		lines := strings.Split(buf.String(), "\n")
		if len(lines) > limit {
			lines = append(lines[:limit], fmt.Sprintf("... (%d more line(s))", len(lines)-limit))
		}
		fmt.Fprintf(out, "    %s\n", strings.Join(lines, "\n    "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample", 20, "Lines of each stored value to show (0 for schema only)")
}
