package data

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported climate file format")

var (
	monthColumns       = []string{"month", "mois", "label", "name"}
	irradiationColumns = []string{"irradiation", "irradiance", "ghi", "g"}
	temperatureColumns = []string{"temperature", "température", "temp", "ta", "temperature_c"}
)

// LoadClimate reads a climate table from path, picking the parser from the
// file extension (.csv/.txt, .json, .yaml/.yml). The table is validated before
// it is returned.
func LoadClimate(path string) (model.ClimateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read climate file")
	}

	var table model.ClimateTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		table, err = ParseClimateCSV(bytes.NewReader(raw))
	case ".json":
		table, err = ParseClimateJSON(raw)
	case ".yaml", ".yml":
		table, err = ParseClimateYAML(raw)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", path)
	}
	return table, nil
}

// ParseClimateCSV reads a header row followed by one row per month. Columns
// are located by name (English or French headers); ';' separated files are
// accepted too.
func ParseClimateCSV(r io.Reader) (model.ClimateTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true
	if firstLine(raw, ';') {
		cr.Comma = ';'
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(model.ErrInvalidClimateTable, "empty file")
	}

	header := rows[0]
	mi := findColumn(header, monthColumns)
	gi := findColumn(header, irradiationColumns)
	ti := findColumn(header, temperatureColumns)
	if mi < 0 || gi < 0 || ti < 0 {
		return nil, errors.Wrapf(model.ErrInvalidClimateTable, "header %v: need month, irradiation and temperature columns", header)
	}

	table := make(model.ClimateTable, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		g, err := parseNumber(row, gi)
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalidClimateTable, "line %d irradiation: %v", line, err)
		}
		ta, err := parseNumber(row, ti)
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalidClimateTable, "line %d temperature: %v", line, err)
		}
		table = append(table, model.ClimateRecord{
			Month:        strings.TrimSpace(row[mi]),
			Irradiation:  g,
			TemperatureC: ta,
		})
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// climateDocument is the JSON/YAML shape: either a bare list of records or an
// object with a "months" list.
type climateDocument struct {
	Name   string                `json:"name" yaml:"name"`
	Months []model.ClimateRecord `json:"months" yaml:"months"`
}

func ParseClimateJSON(raw []byte) (model.ClimateTable, error) {
	var table model.ClimateTable
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &table); err != nil {
			return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
		}
	} else {
		var doc climateDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
		}
		table = doc.Months
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func ParseClimateYAML(raw []byte) (model.ClimateTable, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
	}

	var table model.ClimateTable
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Decode(&table); err != nil {
			return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
		}
	} else {
		var doc climateDocument
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(model.ErrInvalidClimateTable, err.Error())
		}
		table = doc.Months
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func parseNumber(row []string, idx int) (float64, error) {
	if idx >= len(row) {
		return 0, errors.New("missing field")
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return 0, errors.New("empty field")
	}
	return strconv.ParseFloat(s, 64)
}

// firstLine reports whether the first line uses sep and no comma.
func firstLine(raw []byte, sep byte) bool {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	return bytes.IndexByte(line, sep) >= 0 && bytes.IndexByte(line, ',') < 0
}
