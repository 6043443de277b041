package outwriter

import (
	"path/filepath"
	"testing"

	"github.com/sitegrade/sitegrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteExcelExport(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteExcelExport(sampleResult(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit_acmeexample_20260829_103000.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, values := rows[0], rows[1]
	require.Equal(t, len(header), len(values))

	cell := func(name string) string {
		for i, h := range header {
			if h == name {
				return values[i]
			}
		}
		t.Fatalf("column %s not found", name)
		return ""
	}

	assert.Equal(t, "https://acme.example", cell("url"))
	assert.Equal(t, "72.5", cell("final_score"))
	assert.Equal(t, "B", cell("grade"))
	assert.Equal(t, "plumber", cell("business_type"))
	assert.Equal(t, "Acme Plumbing", cell("business_name"))
	assert.Equal(t, "TRUE", cell("gtm"))
}

func TestWriteExcelExportSparseRecord(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	result.Record = schema.AuditRecord{}

	path, err := WriteExcelExport(result, dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Identity and score columns always present; collector columns absent.
	assert.Contains(t, rows[0], "final_score")
	assert.Contains(t, rows[0], "score_seo_analysis")
	assert.NotContains(t, rows[0], "business_name")
	assert.NotContains(t, rows[0], "gtm")
}
