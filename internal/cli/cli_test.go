package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/linqcat/linq"
	"github.com/vegasq/linqcat/output"
)

const peopleJSONL = `{"name":"Joe","age":5,"dept":"eng"}
{"name":"Phillip","age":45,"dept":"ops","height":123}
{"name":"Sam","age":12,"dept":"eng"}
`

func writePeople(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(peopleJSONL), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.True(t, strings.HasPrefix(cmd.Use, "linqcat"))

	for _, name := range []string{"repl", "fields"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "f", format.Shorthand)
	assert.Equal(t, "jsonl", format.DefValue)

	for _, name := range []string{"limit", "table", "workers", "config", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	query := cmd.Flags().Lookup("query")
	require.NotNil(t, query)
	assert.Equal(t, "q", query.Shorthand)
}

func TestQuery(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, "-q", "where(height).select(name, age)", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"Phillip\",\"age\":45}\n", stdout)
}

func TestQueryGroupByCSV(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, "-f", "csv", "-q",
		"groupby(dept).select(key.dept as dept, count() as n, sum(age) as total)", path)
	require.NoError(t, err)
	assert.Equal(t, "dept,n,total\neng,2,17\nops,1,45\n", stdout)
}

func TestQueryScalarResult(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, "-q", "average(age)", path)
	require.NoError(t, err)
	assert.Equal(t, "20.666666666666668\n", stdout)
}

func TestEmptyQueryPrintsInput(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3)
}

func TestLimit(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, "--limit", "2", "-q", "orderby(age).select(name)", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"Joe\"}\n{\"name\":\"Sam\"}\n", stdout)
}

func TestLimitFromEnvironment(t *testing.T) {
	path := writePeople(t)
	t.Setenv("LINQCAT_LIMIT", "1")

	stdout, _, err := runCLI(t, "-q", "select(name)", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"Joe\"}\n", stdout)
}

func TestQueryErrors(t *testing.T) {
	path := writePeople(t)

	t.Run("parse error", func(t *testing.T) {
		_, _, err := runCLI(t, "-q", "select(", path)
		var perr *linq.ParseError
		assert.True(t, errors.As(err, &perr), "got %v", err)
	})

	t.Run("evaluation error", func(t *testing.T) {
		_, _, err := runCLI(t, "-q", "select(name.count())", path)
		assert.True(t, errors.Is(err, linq.ErrNotCollection), "got %v", err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := runCLI(t, "-f", "xml", path)
		assert.True(t, errors.Is(err, output.ErrUnknownFormat), "got %v", err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCLI(t, filepath.Join(t.TempDir(), "nope.jsonl"))
		assert.Error(t, err)
	})

	t.Run("no files", func(t *testing.T) {
		_, _, err := runCLI(t, "-q", "count()")
		assert.Error(t, err)
	})
}

func TestGlobSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jsonl"), []byte(`{"n":1}`+"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("n\n2\n"), 0o600))

	stdout, _, err := runCLI(t, "--workers", "2", "-q", "sum(n)", filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Equal(t, "3\n", stdout)
}

func TestFieldsCommand(t *testing.T) {
	path := writePeople(t)

	stdout, _, err := runCLI(t, "fields", "-f", "csv", path)
	require.NoError(t, err)

	want := "source,name,type,optional,repeated\n" +
		path + ",age,number,false,false\n" +
		path + ",dept,text,false,false\n" +
		path + ",name,text,false,false\n" +
		path + ",height,number,false,false\n"
	assert.Equal(t, want, stdout)
}

func TestConfigFile(t *testing.T) {
	path := writePeople(t)
	cfgPath := filepath.Join(t.TempDir(), "linqcat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: csv\n"), 0o600))

	stdout, _, err := runCLI(t, "--config", cfgPath, "-q", "count()", path)
	require.NoError(t, err)
	assert.Equal(t, "value\n3\n", stdout)
}
