package simulate

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

func WriteProfileCSV(path string, months []MonthRow) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create profile csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"month",
		"irradiation",
		"ambient_c",
		"efficiency",
		"gross_kwh",
		"storage_loss_kwh",
		"net_kwh",
		"cumulative_kwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range months {
		row := []string{
			strconv.Itoa(r.Index),
			r.Month,
			fmtFloat(r.Irradiation),
			fmtFloat(r.AmbientC),
			fmtFloat(r.Efficiency),
			fmtFloat(r.GrossKWh),
			fmtFloat(r.StorageLoss),
			fmtFloat(r.NetKWh),
			fmtFloat(r.CumulativeKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
