// Package datarecording stores simulation results in a SQLite database so
// that runs can be compared and plotted afterwards.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a new table shaped after the fields of
	// sampleEntry, which must be a flat struct.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries to the database.
	Flush()
}

// New creates a DataRecorder backed by a SQLite file at path. An empty path
// picks a unique name. The recorder flushes itself at process exit.
func New(path string) DataRecorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

type sqliteWriter struct {
	*sql.DB

	dbName    string
	tables    map[string]*table
	batchSize int
}

func (t *sqliteWriter) init() {
	if t.dbName == "" {
		t.dbName = "mesisim_" + xid.New().String()
	}

	filename := t.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	structType := reflect.TypeOf(sampleEntry)
	if structType.Kind() != reflect.Struct {
		panic("sample entry must be a struct")
	}

	columns := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if !isAllowedKind(field.Type.Kind()) {
			panic(fmt.Errorf("field %s has unsupported type %s",
				field.Name, field.Type))
		}

		columns = append(columns,
			field.Name+" "+sqlType(field.Type.Kind()))
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)",
		tableName, strings.Join(columns, ", "))

	_, err := t.Exec(stmt)
	if err != nil {
		panic(err)
	}

	t.tables[tableName] = &table{structType: structType}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	tbl, ok := t.tables[tableName]
	if !ok {
		panic(fmt.Errorf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != tbl.structType {
		panic(fmt.Errorf("entry type does not match table %s", tableName))
	}

	tbl.entries = append(tbl.entries, entry)

	if len(tbl.entries) >= t.batchSize {
		t.flushTable(tableName, tbl)
	}
}

func (t *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(t.tables))
	for name := range t.tables {
		names = append(names, name)
	}

	return names
}

func (t *sqliteWriter) Flush() {
	for name, tbl := range t.tables {
		t.flushTable(name, tbl)
	}
}

func (t *sqliteWriter) flushTable(name string, tbl *table) {
	if len(tbl.entries) == 0 {
		return
	}

	placeholders := make([]string, tbl.structType.NumField())
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := t.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		name, strings.Join(placeholders, ", ")))
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, entry := range tbl.entries {
		v := reflect.ValueOf(entry)

		values := make([]any, v.NumField())
		for i := range values {
			values[i] = v.Field(i).Interface()
		}

		_, err := stmt.Exec(values...)
		if err != nil {
			panic(err)
		}
	}

	tbl.entries = nil
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func sqlType(kind reflect.Kind) string {
	switch kind {
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	case reflect.Bool:
		return "INTEGER"
	default:
		return "INTEGER"
	}
}
