package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-i", "data.json", "--out", "build", "--chart"})
	require.NoError(t, err)
	assert.Equal(t, "data.json", o.input)
	assert.Equal(t, "build", o.out)
	assert.Equal(t, "pdf", o.format)
	assert.True(t, o.chart)

	_, err = parseFlags(nil)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-i", "x.json", "--format", "docx"})
	assert.Error(t, err)
}

func TestReadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
primary_color: "#112233"
section_order: [introduction, conclusion]
dynamic_content:
  header_text: Informe Anual
`), 0o600))

	p, err := readSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "#112233", p.Values.String("primary_color"))
	assert.Equal(t, []string{"introduction", "conclusion"}, p.Values.Strings("section_order"))
	assert.Equal(t, "Informe Anual", p.DynamicContent.String("header_text"))
	assert.NotContains(t, p.Values, "dynamic_content")
}

func TestRun_WritesPDF(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("section_order: [introduction]\n"), 0o600))

	path, err := run(options{
		input:    "-",
		settings: settingsPath,
		out:      filepath.Join(dir, "out"),
		format:   "pdf",
		timeout:  defaultTestTimeout,
	}, strings.NewReader(`{"childName":"Ana","reportType":"cornell","evaluationDate":"2024-03-05"}`))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "cornell_Ana_"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}

func TestRun_UnknownReportType(t *testing.T) {
	_, err := run(options{input: "-", out: t.TempDir(), format: "pdf", timeout: defaultTestTimeout},
		strings.NewReader(`{"childName":"Ana","reportType":"astrologia"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot generate report: unknown report type "astrologia"`)
}

const defaultTestTimeout = 10 * time.Second
