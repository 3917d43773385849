// Command generate writes the sample staff data set in every input format
// linqcat reads. Run it from this directory with `go run generate.go`.
package main

import (
	"database/sql"
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"github.com/segmentio/encoding/json"
	"github.com/segmentio/parquet-go"
	_ "modernc.org/sqlite"
)

type Employee struct {
	ID     int64   `parquet:"id" json:"id"`
	Name   string  `parquet:"name" json:"name"`
	Dept   string  `parquet:"dept" json:"dept"`
	Age    int32   `parquet:"age" json:"age"`
	Active bool    `parquet:"active" json:"active"`
	Salary float64 `parquet:"salary" json:"salary"`
}

var staff = []Employee{
	{ID: 1, Name: "alice", Dept: "eng", Age: 30, Active: true, Salary: 95500},
	{ID: 2, Name: "bob", Dept: "ops", Age: 25, Active: false, Salary: 82300},
	{ID: 3, Name: "charlie", Dept: "eng", Age: 35, Active: true, Salary: 88700},
	{ID: 4, Name: "diana", Dept: "sales", Age: 28, Active: true, Salary: 91200},
	{ID: 5, Name: "eve", Dept: "ops", Age: 42, Active: false, Salary: 76800},
}

func main() {
	writeParquet("staff.parquet")
	writeJSONLines("staff.jsonl")
	writeCSV("staff.csv")
	writeSQLite("staff.db")
	log.Printf("Generated staff data set with %d employees", len(staff))
}

func writeParquet(path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Employee](file)
	if _, err := writer.Write(staff); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
}

func writeJSONLines(path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, e := range staff {
		if err := enc.Encode(e); err != nil {
			log.Fatal(err)
		}
	}
}

func writeCSV(path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	_ = w.Write([]string{"id", "name", "dept", "age", "active", "salary"})
	for _, e := range staff {
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Dept,
			strconv.Itoa(int(e.Age)),
			strconv.FormatBool(e.Active),
			strconv.FormatFloat(e.Salary, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
}

func writeSQLite(path string) {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE staff (id INTEGER, name TEXT, dept TEXT, age INTEGER, active BOOLEAN, salary REAL)`); err != nil {
		log.Fatal(err)
	}
	for _, e := range staff {
		if _, err := db.Exec(`INSERT INTO staff VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Dept, e.Age, e.Active, e.Salary); err != nil {
			log.Fatal(err)
		}
	}
}
