package simulate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func uniformTable(g, ta float64) model.ClimateTable {
	t := make(model.ClimateTable, len(monthNames))
	for i, m := range monthNames {
		t[i] = model.ClimateRecord{Month: m, Irradiation: g, TemperatureC: ta}
	}
	return t
}

func evacuated(t *testing.T) model.CollectorParameters {
	p, err := model.CollectorFor(model.EvacuatedTube)
	require.NoError(t, err)
	return p
}

func TestEngine_UniformClimate(t *testing.T) {
	c := model.Defaults()
	e := New(c)
	q := model.DailyDemand(c, 4, 50, 55, 18)

	res, err := e.Run(2, 100, uniformTable(75, 20), q, evacuated(t))
	require.NoError(t, err)

	// eta = 0.85 - 2*30/75 = 0.05, gross = 2*0.05*75*30 = 225, loss = 3.2
	require.Len(t, res.Months, 12)
	for _, m := range res.Months {
		assert.InDelta(t, 0.05, m.Efficiency, 1e-9)
		assert.InDelta(t, 225, m.GrossKWh, 1e-6)
		assert.InDelta(t, 3.2, m.StorageLoss, 1e-9)
		assert.InDelta(t, 221.8, m.NetKWh, 1e-6)
	}
	assert.InDelta(t, 2661.6, res.AnnualKWh, 1e-5)
	assert.InDelta(t, 3136.161, res.AnnualDemand, 1e-3)
	assert.InDelta(t, 0.84868, res.Fraction, 1e-5)
	assert.InDelta(t, res.AnnualKWh, res.Months[11].CumulativeKWh, 1e-9)
}

func TestEngine_NetEnergyNeverNegative(t *testing.T) {
	e := New(model.Defaults())
	fp, err := model.CollectorFor(model.FlatPlate)
	require.NoError(t, err)

	// Flat plate at G=100, Ta=20 has zero efficiency; losses alone would go negative.
	res, err := e.Run(10, 750, uniformTable(100, 20), 8.6, fp)
	require.NoError(t, err)
	require.Len(t, res.Profile(), 12)
	for _, v := range res.Profile() {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Equal(t, 0.0, res.AnnualKWh)
	assert.Equal(t, 0.0, res.Fraction)
}

func TestEngine_AmbientAboveStorageIsGain(t *testing.T) {
	e := New(model.Defaults())
	res, err := e.Run(2, 500, uniformTable(100, 65), 8.6, evacuated(t))
	require.NoError(t, err)
	m := res.Months[0]
	assert.Less(t, m.StorageLoss, 0.0)
	assert.InDelta(t, m.GrossKWh-m.StorageLoss, m.NetKWh, 1e-9)
}

func TestEngine_DoesNotMutateTable(t *testing.T) {
	table := uniformTable(75, 20)
	table[5].Irradiation = 90
	snapshot := append(model.ClimateTable{}, table...)

	_, err := New(model.Defaults()).Run(4, 300, table, 8.6, evacuated(t))
	require.NoError(t, err)
	assert.Equal(t, snapshot, table)
}

func TestEngine_Deterministic(t *testing.T) {
	e := New(model.Defaults())
	table := uniformTable(75, 20)
	a, err := e.Run(3.5, 250, table, 8.6, evacuated(t))
	require.NoError(t, err)
	b, err := e.Run(3.5, 250, table, 8.6, evacuated(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEngine_ZeroDemandGivesNonFiniteFraction(t *testing.T) {
	res, err := New(model.Defaults()).Run(2, 100, uniformTable(75, 20), 0, evacuated(t))
	require.NoError(t, err)
	assert.False(t, res.Fraction >= 0.6 && res.Fraction <= 0.9)
}

func TestEngine_RejectsMalformedTable(t *testing.T) {
	e := New(model.Defaults())
	_, err := e.Run(2, 100, uniformTable(75, 20)[:11], 8.6, evacuated(t))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))

	_, err = e.Run(2, 100, nil, 8.6, evacuated(t))
	assert.True(t, errors.Is(err, model.ErrInvalidClimateTable))
}

func TestEngine_RejectsInvalidCollector(t *testing.T) {
	_, err := New(model.Defaults()).Run(2, 100, uniformTable(75, 20), 8.6, model.CollectorParameters{Eta0: 1.5, A1: 2})
	assert.Error(t, err)
}

func TestWriteProfileCSV(t *testing.T) {
	res, err := New(model.Defaults()).Run(2, 100, uniformTable(75, 20), 8.6, evacuated(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "profile.csv")
	require.NoError(t, WriteProfileCSV(path, res.Months))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 13)
	assert.Equal(t, "month", rows[0][1])
	assert.Equal(t, "Jan", rows[1][1])
	assert.Equal(t, "221.800000", rows[1][7])
}
