package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func csvTable(header string, sep string, n int) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s%s%d%s%.1f\n", months[i%12], sep, 150+i, sep, 14+float64(i)/2)
	}
	return b.String()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseClimateCSV(t *testing.T) {
	table, err := ParseClimateCSV(strings.NewReader(csvTable("Month,Irradiation,Temperature", ",", 12)))
	require.NoError(t, err)
	require.Len(t, table, 12)
	assert.Equal(t, model.ClimateRecord{Month: "Jan", Irradiation: 150, TemperatureC: 14}, table[0])
	assert.Equal(t, "Dec", table[11].Month)
	assert.InDelta(t, 19.5, table[11].TemperatureC, 1e-9)
}

func TestParseClimateCSV_FrenchSemicolon(t *testing.T) {
	body := csvTable("Mois;Irradiation;Temperature", ";", 12)
	table, err := ParseClimateCSV(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, months, table.Months())
}

func TestParseClimateCSV_ColumnOrderIndependent(t *testing.T) {
	var b strings.Builder
	b.WriteString("temperature,month,irradiation\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "%d,%s,%d\n", 10+i, months[i], 100+i)
	}
	table, err := ParseClimateCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 100.0, table[0].Irradiation)
	assert.Equal(t, 10.0, table[0].TemperatureC)
}

func TestParseClimateCSV_Rejects(t *testing.T) {
	tests := map[string]string{
		"eleven rows":    csvTable("Month,Irradiation,Temperature", ",", 11),
		"thirteen rows":  csvTable("Month,Irradiation,Temperature", ",", 13),
		"missing column": "Month,Irradiation\nJan,100\n",
		"empty":          "",
		"non numeric":    strings.Replace(csvTable("Month,Irradiation,Temperature", ",", 12), "150", "sunny", 1),
		"infinite value": strings.Replace(csvTable("Month,Irradiation,Temperature", ",", 12), "150", "Inf", 1),
		"short row":      strings.Replace(csvTable("Month,Irradiation,Temperature", ",", 12), "Jan,150,14.0", "Jan,150", 1),
	}
	for name, body := range tests {
		_, err := ParseClimateCSV(strings.NewReader(body))
		assert.True(t, errors.Is(err, model.ErrInvalidClimateTable), "%s: %v", name, err)
	}
}

func TestParseClimateJSON(t *testing.T) {
	var recs []string
	for _, m := range months {
		recs = append(recs, fmt.Sprintf(`{"month":%q,"irradiation":120,"temperature":18}`, m))
	}
	list := "[" + strings.Join(recs, ",") + "]"

	table, err := ParseClimateJSON([]byte(list))
	require.NoError(t, err)
	assert.Len(t, table, 12)

	table, err = ParseClimateJSON([]byte(`{"name":"x","months":` + list + `}`))
	require.NoError(t, err)
	assert.Equal(t, 120.0, table[6].Irradiation)

	_, err = ParseClimateJSON([]byte(`[{"month":"Jan","irradiation":"lots"}]`))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	noTemperature := strings.ReplaceAll(list, `,"temperature":18`, "")
	_, err = ParseClimateJSON([]byte(noTemperature))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	oneShort := strings.Replace(list, `"irradiation":120,`, "", 1)
	_, err = ParseClimateJSON([]byte(`{"months":` + oneShort + `}`))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))
}

func TestLoadClimate_Formats(t *testing.T) {
	dir := t.TempDir()

	csvPath := writeFile(t, dir, "a.csv", csvTable("month,irradiation,temperature", ",", 12))
	table, err := LoadClimate(csvPath)
	require.NoError(t, err)
	assert.Len(t, table, 12)

	var y strings.Builder
	y.WriteString("months:\n")
	for _, m := range months {
		fmt.Fprintf(&y, "  - {month: %s, irradiation: 75, temperature: 20}\n", m)
	}
	yamlPath := writeFile(t, dir, "b.yaml", y.String())
	table, err = LoadClimate(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 75.0, table[0].Irradiation)

	listPath := writeFile(t, dir, "c.yml", strings.Replace(y.String(), "months:\n", "", 1))
	table, err = LoadClimate(listPath)
	require.NoError(t, err)
	assert.Len(t, table, 12)

	noIrradiation := strings.ReplaceAll(y.String(), "irradiation: 75, ", "")
	_, err = LoadClimate(writeFile(t, dir, "e.yaml", noIrradiation))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	noTemperature := strings.Replace(y.String(), ", temperature: 20}", "}", 1)
	_, err = LoadClimate(writeFile(t, dir, "f.yml", noTemperature))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	_, err = LoadClimate(writeFile(t, dir, "g.json", `[{"month":"Jan","irradiation":120}]`))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	_, err = LoadClimate(writeFile(t, dir, "d.xlsx", "binary"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadClimate(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestLoadClimate_ExampleDatasets(t *testing.T) {
	for _, name := range []string{"sample.csv", "coastal.yaml"} {
		table, err := LoadClimate(filepath.Join("..", "..", "examples", "climate", name))
		require.NoError(t, err, name)
		assert.Len(t, table, 12)
	}
}

func TestListAndResolveDatasets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "west.csv", "x")
	writeFile(t, dir, "east.yaml", "x")
	writeFile(t, dir, "notes.md", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	ds, err := ListDatasets(dir)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "east", ds[0].ID)
	assert.Equal(t, "west", ds[1].ID)

	path, err := ResolveDataset(dir, "west")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "west.csv"), path)

	for _, bad := range []string{"", "nope", "../west", ".hidden", "sub/west"} {
		_, err := ResolveDataset(dir, bad)
		assert.True(t, errors.Is(err, ErrDatasetNotFound), bad)
	}

	empty, err := ListDatasets(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTableCache_LoadsOnce(t *testing.T) {
	calls := 0
	c := NewTableCache()
	c.load = func(path string) (model.ClimateTable, error) {
		calls++
		tbl := make(model.ClimateTable, 12)
		for i := range tbl {
			tbl[i] = model.ClimateRecord{Month: months[i], Irradiation: 100, TemperatureC: 20}
		}
		return tbl, nil
	}

	a, err := c.Get("x.csv")
	require.NoError(t, err)
	a[0].Irradiation = -1 // callers get their own copy

	b, err := c.Get("x.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 100.0, b[0].Irradiation)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, err = c.Get("x.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTableCache_ErrorsNotCached(t *testing.T) {
	c := NewTableCache()
	_, err := c.Get(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
