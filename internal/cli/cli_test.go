package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportDSL = `doc Report v1 {
  meta { title: "Report" }
  page A5 margin 10mm {
    section summary {
      text size 14pt bold { "Hello, ${name}" }
    }
    each row in rows {
      text { "${row}" }
    }
    footer { text { pagenumber current } }
  }
}
`

func writeDoc(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRenderWritesPDFAndDump(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeDoc(t, dir, "report.folio", reportDSL)
	out := filepath.Join(dir, "out")

	c := New(io.Discard, LogInfo)
	err := c.Execute(context.Background(), []string{
		"render", input, "--out", out, "--dump",
		"--data", `{"name": "Ada", "rows": ["one", "two"]}`,
	})
	require.NoError(t, err)

	pdf, err := os.ReadFile(filepath.Join(out, "report.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF")

	raw, err := os.ReadFile(filepath.Join(out, "report.json"))
	require.NoError(t, err)
	var dump struct {
		Meta  struct{ Title string }
		Pages []struct {
			Texts []struct{ Content string }
		}
	}
	require.NoError(t, json.Unmarshal(raw, &dump))
	assert.Equal(t, "Report", dump.Meta.Title)
	require.Len(t, dump.Pages, 1)
	var texts []string
	for _, tb := range dump.Pages[0].Texts {
		texts = append(texts, tb.Content)
	}
	assert.Equal(t, []string{"Hello, Ada", "one", "two", "1"}, texts)
}

func TestRenderReportsComposeErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeDoc(t, dir, "bad.folio", `doc Bad v1 {
  page A4 { wobble { "x" } }
}`)
	err := New(io.Discard, LogInfo).Execute(context.Background(), []string{"render", input, "--out", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_DSL")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeDoc(t, dir, "report.folio", reportDSL)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", input, "--data", `{"name": "Ada", "rows": []}`})
	require.NoError(t, root.ExecuteContext(context.Background()))

	got := out.String()
	assert.Contains(t, got, "1 pages in 1 parts")
	assert.Contains(t, got, "summary")
	assert.Contains(t, got, "148×210 mm")
}

func TestLoadData(t *testing.T) {
	dir := t.TempDir()

	v, err := loadData("")
	require.NoError(t, err)
	assert.Nil(t, v)

	tomlPath := writeDoc(t, dir, "data.toml", "name = \"Ada\"\n[[rows]]\nqty = 2\n")
	v, err = loadData(tomlPath)
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "Ada", m["name"])
	assert.Len(t, m["rows"], 1)

	jsonPath := writeDoc(t, dir, "data.json", `{"name": "Bob"}`)
	v, err = loadData(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Bob", v.(map[string]any)["name"])

	_, err = loadData(filepath.Join(dir, "data.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), ".yaml"))
}
