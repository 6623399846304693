package handlers

import (
	"math"
	"net/http"

	"solar-thermal-sizing/internal/analysis"
	"solar-thermal-sizing/internal/api/middleware"
	"solar-thermal-sizing/internal/api/models"
	"solar-thermal-sizing/internal/config"
	"solar-thermal-sizing/internal/data"
	"solar-thermal-sizing/internal/logger"
	"solar-thermal-sizing/internal/model"
	"solar-thermal-sizing/internal/optimize"
	"solar-thermal-sizing/internal/simulate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultRankLimit = 10

// SizingHandler handles sizing, simulation and ranking requests
type SizingHandler struct {
	climateDir string
	cache      *data.TableCache
	constants  model.Constants
}

// NewSizingHandler creates a new sizing handler. Named climate datasets are
// read from climateDir through cache.
func NewSizingHandler(climateDir string, cache *data.TableCache, constants model.Constants) *SizingHandler {
	if cache == nil {
		cache = data.NewTableCache()
	}
	return &SizingHandler{
		climateDir: climateDir,
		cache:      cache,
		constants:  constants,
	}
}

// GetClimateDir returns the directory scanned for climate datasets
func (h *SizingHandler) GetClimateDir() string {
	return h.climateDir
}

// requestError carries the HTTP status and error code for a failed request.
type requestError struct {
	status int
	code   string
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

func abortWithError(c *gin.Context, err error) {
	re, ok := err.(*requestError)
	if !ok {
		re = &requestError{status: http.StatusInternalServerError, code: "SIZING_ERROR", err: err}
	}
	_ = c.Error(re.err)
	c.JSON(re.status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    re.code,
			Message: re.err.Error(),
		},
	})
}

// bindError classifies a ShouldBindJSON failure. Inline climate records that
// fail to decode are reported as a climate problem, not a malformed body.
func bindError(err error) error {
	if errors.Is(err, model.ErrInvalidClimateTable) {
		return &requestError{status: http.StatusBadRequest, code: "INVALID_CLIMATE", err: err}
	}
	return &requestError{status: http.StatusBadRequest, code: "INVALID_REQUEST", err: err}
}

// inputs is a request resolved against the defaults and the climate store.
type inputs struct {
	params    model.UserParameters
	collector model.CollectorParameters
	table     model.ClimateTable
	price     float64
}

func (h *SizingHandler) resolve(req models.SizingRequest) (*inputs, error) {
	cfg := config.Default()
	cfg.Household = config.HouseholdConfig{
		Occupants:             req.Household.Occupants,
		ConsumptionLPerPerson: req.Household.ConsumptionLPerPerson,
		UseTempC:              req.Household.UseTempC,
		ColdTempC:             req.Household.ColdTempC,
	}
	cfg.Collector = config.CollectorConfig{
		Type: req.Collector.Type,
		Eta0: req.Collector.Eta0,
		A1:   req.Collector.A1,
	}
	cfg.Economics = config.EconomicsConfig{
		CostPerM2:         req.Economics.CostPerM2,
		EnergyPricePerKWh: req.Economics.EnergyPricePerKWh,
	}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &requestError{status: http.StatusBadRequest, code: "INVALID_CONFIG", err: err}
	}

	params, err := cfg.ToUserParameters()
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, code: "INVALID_CONFIG", err: err}
	}
	collector, err := cfg.CollectorParameters()
	if err != nil {
		return nil, &requestError{status: http.StatusBadRequest, code: "INVALID_CONFIG", err: err}
	}

	table, err := h.loadClimate(req.Climate)
	if err != nil {
		return nil, err
	}

	return &inputs{
		params:    params,
		collector: collector,
		table:     table,
		price:     cfg.Economics.EnergyPricePerKWh,
	}, nil
}

func (h *SizingHandler) loadClimate(in models.ClimateInput) (model.ClimateTable, error) {
	if len(in.Records) > 0 {
		table := model.ClimateTable(in.Records)
		if err := table.Validate(); err != nil {
			return nil, &requestError{status: http.StatusBadRequest, code: "INVALID_CLIMATE", err: err}
		}
		return table, nil
	}
	if in.Dataset == "" {
		return nil, &requestError{
			status: http.StatusBadRequest,
			code:   "INVALID_CLIMATE",
			err:    errors.New("climate.dataset or climate.records is required"),
		}
	}

	path, err := data.ResolveDataset(h.climateDir, in.Dataset)
	if err != nil {
		if errors.Is(err, data.ErrDatasetNotFound) {
			return nil, &requestError{status: http.StatusNotFound, code: "DATASET_NOT_FOUND", err: err}
		}
		return nil, &requestError{status: http.StatusInternalServerError, code: "CLIMATE_LOAD_ERROR", err: err}
	}
	table, err := h.cache.Get(path)
	if err != nil {
		return nil, &requestError{
			status: http.StatusInternalServerError,
			code:   "CLIMATE_LOAD_ERROR",
			err:    errors.Wrapf(err, "dataset %q", in.Dataset),
		}
	}
	return table, nil
}

func (h *SizingHandler) optimizer() *optimize.Optimizer {
	return optimize.New(simulate.New(h.constants))
}

func (in *inputs) problem(c model.Constants) optimize.Problem {
	return optimize.Problem{
		Table:       in.table,
		DailyDemand: in.params.DailyDemand(c),
		Collector:   in.collector,
		CostPerM2:   in.params.CostPerM2,
	}
}

// Size handles POST /api/v1/sizing
func (h *SizingHandler) Size(c *gin.Context) {
	var req models.SizingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	in, err := h.resolve(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	opt := h.optimizer()
	report, err := analysis.BuildReport(opt, analysis.Request{
		Parameters:  in.params,
		Collector:   in.collector,
		Table:       in.table,
		EnergyPrice: in.price,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := models.SizingResponse{
		ID:     uuid.New().String(),
		Status: models.StatusCompleted,
		Demand: models.DemandSummary{
			DailyKWh:  report.DailyDemandKWh,
			AnnualKWh: report.AnnualDemandKWh,
		},
		Search: models.SearchSummary{
			Evaluated: report.Evaluated,
			Feasible:  report.Feasible,
			BandMin:   optimize.FeasibleBand.Min,
			BandMax:   optimize.FeasibleBand.Max,
		},
	}

	if !report.Found {
		resp.Status = models.StatusNoSolution
		resp.Message = "No optimal configuration found"
		logger.L().Infow("sizing: no feasible configuration",
			"id", resp.ID, "request_id", middleware.RequestID(c), "params", in.params.String())
		c.JSON(http.StatusOK, resp)
		return
	}

	for _, pt := range report.Sweep {
		if !finite(pt.AnnualKWh) || !finite(pt.Fraction) {
			abortWithError(c, &requestError{
				status: http.StatusBadRequest,
				code:   "NON_FINITE_RESULT",
				err:    errors.Errorf("sensitivity sweep overflows at area %g m2", pt.AreaM2),
			})
			return
		}
	}

	best := report.Best
	financials := report.Financials
	resp.Best = &best
	resp.Profile = monthEnergies(report.Months)
	resp.AnnualKWh = report.AnnualKWh
	resp.Fraction = report.Fraction
	resp.Financials = &financials
	resp.Sweep = report.Sweep

	logger.L().Infow("sizing completed",
		"id", resp.ID, "request_id", middleware.RequestID(c),
		"area_m2", best.AreaM2, "volume_l", best.VolumeL, "fraction", best.Fraction)
	c.JSON(http.StatusOK, resp)
}

// Simulate handles POST /api/v1/simulate
func (h *SizingHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	in, err := h.resolve(req.SizingRequest)
	if err != nil {
		abortWithError(c, err)
		return
	}

	engine := simulate.New(h.constants)
	res, err := engine.Run(req.AreaM2, req.VolumeL, in.table, in.params.DailyDemand(h.constants), in.collector)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Extreme climate values can still overflow; JSON cannot carry the result.
	if !finite(res.AnnualKWh) {
		abortWithError(c, &requestError{
			status: http.StatusBadRequest,
			code:   "NON_FINITE_RESULT",
			err:    errors.Errorf("annual yield overflows for area %g m2 and volume %g L", req.AreaM2, req.VolumeL),
		})
		return
	}

	resp := models.SimulateResponse{
		AreaM2:          res.AreaM2,
		VolumeL:         res.VolumeL,
		Profile:         monthEnergies(res.Months),
		AnnualKWh:       res.AnnualKWh,
		AnnualDemandKWh: res.AnnualDemand,
		Feasible:        optimize.FeasibleBand.Contains(res.Fraction),
	}
	// JSON has no Inf/NaN: an undefined fraction (zero demand) is sent as null.
	if finite(res.Fraction) {
		f := res.Fraction
		resp.Fraction = &f
	}
	c.JSON(http.StatusOK, resp)
}

// Rank handles POST /api/v1/rank
func (h *SizingHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	in, err := h.resolve(req.SizingRequest)
	if err != nil {
		abortWithError(c, err)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}

	candidates, err := h.optimizer().Rank(in.problem(h.constants), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	rankings := make([]models.Ranking, len(candidates))
	for i, cand := range candidates {
		rankings[i] = models.Ranking{Rank: i + 1, Candidate: cand}
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func monthEnergies(rows []simulate.MonthRow) []models.MonthEnergy {
	out := make([]models.MonthEnergy, len(rows))
	for i, m := range rows {
		out[i] = models.MonthEnergy{
			Month:       m.Month,
			Irradiation: m.Irradiation,
			AmbientC:    m.AmbientC,
			Efficiency:  m.Efficiency,
			GrossKWh:    m.GrossKWh,
			LossKWh:     m.StorageLoss,
			NetKWh:      m.NetKWh,
		}
	}
	return out
}
