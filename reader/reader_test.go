package reader

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/linqcat/linq"
)

type personRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
	Age  int32  `parquet:"age"`
}

func writeParquet[T any](t *testing.T, path string, rows []T) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	writer := parquet.NewGenericWriter[T](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func names(t *testing.T, rows linq.List) []string {
	t.Helper()
	var out []string
	for _, row := range rows {
		r, ok := row.(*linq.Record)
		require.True(t, ok, "row is %T", row)
		out = append(out, string(r.Field("name").(linq.Text)))
	}
	return out
}

func TestReadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.parquet")
	writeParquet(t, path, []personRow{
		{ID: 1, Name: "Alice", Age: 30},
		{ID: 2, Name: "Bob", Age: 25},
	})

	rows, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0].(*linq.Record)
	assert.Equal(t, []string{"id", "name", "age"}, first.Names())
	assert.Equal(t, linq.Number(1), first.Field("id"))
	assert.Equal(t, linq.Text("Alice"), first.Field("name"))
	assert.Equal(t, linq.Number(30), first.Field("age"))
}

func TestReaderClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.parquet")
	writeParquet(t, path, []personRow{{ID: 1, Name: "Alice"}})

	r, err := NewReader(path)
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestNewReaderRejectsNonParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	writeFile(t, path, "not parquet")

	_, err := NewReader(path)
	assert.Error(t, err)
}

func TestReadJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	writeFile(t, path, `[{"name":"Joe","age":5,"tags":["a"]},{"name":"Sam","address":{"city":"Oslo"}}, 3]`)

	rows, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	joe := rows[0].(*linq.Record)
	assert.Equal(t, []string{"age", "name", "tags"}, joe.Names())
	assert.Equal(t, linq.Number(5), joe.Field("age"))
	assert.Equal(t, linq.List{linq.Text("a")}, joe.Field("tags"))

	city, err := linq.GetProperty(rows[1], "address.city")
	require.NoError(t, err)
	assert.Equal(t, linq.Text("Oslo"), city)

	assert.Equal(t, linq.Number(3), rows[2].(*linq.Record).Field(ScalarField))
}

func TestReadJSONFallsBackToLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	writeFile(t, path, "{\"name\":\"Joe\"}\n{\"name\":\"Sam\"}\n")

	rows, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Joe", "Sam"}, names(t, rows))
}

func TestReadJSONLines(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jsonl", "a.ndjson"} {
		path := filepath.Join(dir, name)
		writeFile(t, path, "{\"name\":\"Joe\",\"ok\":true}\n\n{\"name\":\"Sam\",\"ok\":null}\n")

		rows, err := ReadFile(path, Options{})
		require.NoError(t, err, name)
		assert.Equal(t, []string{"Joe", "Sam"}, names(t, rows))
		assert.Equal(t, linq.Bool(true), rows[0].(*linq.Record).Field("ok"))
		assert.Equal(t, linq.Missing{}, rows[1].(*linq.Record).Field("ok"))
	}
}

func TestReadJSONLinesReportsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	writeFile(t, path, "{\"name\":\"Joe\"}\n{\"name\":}\n")

	_, err := ReadFile(path, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	writeFile(t, path, "name,age,active,note\nJoe,5,true,\nSam,12.5,false,hi there\nAnn\n")

	rows, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	joe := rows[0].(*linq.Record)
	assert.Equal(t, []string{"name", "age", "active", "note"}, joe.Names())
	assert.Equal(t, linq.Number(5), joe.Field("age"))
	assert.Equal(t, linq.Bool(true), joe.Field("active"))
	assert.Equal(t, linq.Missing{}, joe.Field("note"))

	sam := rows[1].(*linq.Record)
	assert.Equal(t, linq.Number(12.5), sam.Field("age"))
	assert.Equal(t, linq.Text("hi there"), sam.Field("note"))

	ann := rows[2].(*linq.Record)
	assert.Equal(t, linq.Missing{}, ann.Field("age"))
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		cell string
		want linq.Value
	}{
		{"", linq.Missing{}},
		{"true", linq.Bool(true)},
		{"false", linq.Bool(false)},
		{"1e3", linq.Number(1000)},
		{"-2.5", linq.Number(-2.5)},
		{"Nan", linq.Text("Nan")},
		{"NaN", linq.Text("NaN")},
		{"Inf", linq.Text("Inf")},
		{"Infinity", linq.Text("Infinity")},
		{"-inf", linq.Text("-inf")},
		{"0x10", linq.Text("0x10")},
		{"1e400", linq.Text("1e400")},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCell(tt.cell))
		})
	}
}

func TestReadCSVKeepsNonFiniteWordsAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.csv")
	writeFile(t, path, "name,code\nNan,Inf\nInfinity,0x10\n")

	rows, err := ReadFile(path, Options{})
	require.NoError(t, err)

	got, err := linq.MustCompile("where(name).count()").Run(rows)
	require.NoError(t, err)
	assert.Equal(t, linq.Number(2), got)
	assert.Equal(t, linq.Text("Inf"), rows[0].(*linq.Record).Field("code"))
}

func TestReadCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, "")

	_, err := ReadFile(path, Options{})
	assert.True(t, errors.Is(err, ErrEmptyHeader), "got %v", err)
}

func createSQLite(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE "people" (name TEXT, age INTEGER, score REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO people VALUES ('Joe', 5, 1.5), ('Sam', 12, NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE audit (id INTEGER)`)
	require.NoError(t, err)
}

func TestReadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.db")
	createSQLite(t, path)

	rows, err := ReadFile(path, Options{Table: "people"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	joe := rows[0].(*linq.Record)
	assert.Equal(t, []string{"name", "age", "score"}, joe.Names())
	assert.Equal(t, linq.Number(5), joe.Field("age"))
	assert.Equal(t, linq.Number(1.5), joe.Field("score"))
	assert.Equal(t, linq.Missing{}, rows[1].(*linq.Record).Field("score"))

	tables, err := Tables(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"audit", "people"}, tables)
}

func TestReadSQLiteErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.sqlite")
	createSQLite(t, path)

	_, err := ReadFile(path, Options{})
	assert.True(t, errors.Is(err, ErrTableRequired))
	assert.Contains(t, err.Error(), "(tables: audit, people)")

	_, err = ReadFile(path, Options{Table: "nope"})
	assert.Error(t, err)

	missing := filepath.Join(dir, "missing.db")
	_, err = ReadFile(missing, Options{Table: "people"})
	assert.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "reading must not create the database")
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile("data.xlsx", Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.parquet":    FormatParquet,
		"a.JSON":       FormatJSON,
		"a.jsonl":      FormatJSONLines,
		"a.ndjson":     FormatJSONLines,
		"a.csv":        FormatCSV,
		"a.db":         FormatSQLite,
		"a.sqlite3":    FormatSQLite,
		"a.txt":        FormatUnknown,
		"no-extension": FormatUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}
