package model

// StorageLoss returns the monthly thermal loss (kWh) of a storage tank of the
// given volume (liters). The result is negative when ambient exceeds the
// storage temperature; the simulator subtracts it as-is.
func StorageLoss(c Constants, volume, ambientC float64) float64 {
	return c.StorageLossCoeff * volume * (c.StorageTempC - ambientC) * c.LossScale
}
