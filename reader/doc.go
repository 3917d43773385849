// Package reader loads record sets for linq queries.
//
// Files are decoded by extension: Apache Parquet, JSON arrays, JSON Lines,
// CSV with a header row and SQLite tables. Every reader returns a linq.List
// whose items are *linq.Record.
//
// Reading a single file:
//
//	rows, err := reader.ReadFile("people.parquet", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reading every file matching a glob, four at a time:
//
//	rows, err := reader.ReadFiles("logs/*.jsonl", reader.Options{Workers: 4})
//
// Rows read through a glob carry a "_file" field naming their source file.
//
// Parquet decoding uses github.com/segmentio/parquet-go, JSON uses
// github.com/segmentio/encoding/json and SQLite uses the pure Go
// modernc.org/sqlite driver.
package reader
