package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rseclp/internal/api/models"
	"rseclp/internal/datasetgen"
)

// GenerateRequest is the JSON body of POST /api/v1/instances/generate.
type GenerateRequest struct {
	NumOperations           int     `json:"numOperations" binding:"required"`
	NumMeteringIntervalsMul int     `json:"numMeteringIntervalsMul"`
	Alpha1                  float64 `json:"alpha1"`
	Alpha2                  float64 `json:"alpha2"`
	Alpha3                  float64 `json:"alpha3"`
	MaxDeviation            int     `json:"maxDeviation"`
	LengthMeteringInterval  int     `json:"lengthMeteringInterval"`
	MaxEnergyConsumption    float64 `json:"maxEnergyConsumption"`
	Seed                    int64   `json:"seed"`
}

// Generate handles POST /api/v1/instances/generate: it synthesizes one
// random instance from the given distribution parameters and returns it
// as an InstancePayload, ready to be fed straight into Solve or Check.
func Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Alpha1 <= 0 {
		req.Alpha1 = 1.0
	}
	if req.Alpha2 <= 0 {
		req.Alpha2 = 1.0
	}
	if req.Alpha3 <= 0 {
		req.Alpha3 = 0.5
	}
	if req.NumMeteringIntervalsMul <= 0 {
		req.NumMeteringIntervalsMul = 2
	}

	ins, err := datasetgen.Generate(datasetgen.Params{
		NumOperations:           req.NumOperations,
		NumMeteringIntervalsMul: req.NumMeteringIntervalsMul,
		Alpha1:                  req.Alpha1,
		Alpha2:                  req.Alpha2,
		Alpha3:                  req.Alpha3,
		MaxDeviation:            req.MaxDeviation,
		LengthMeteringInterval:  req.LengthMeteringInterval,
		MaxEnergyConsumption:    req.MaxEnergyConsumption,
		Seed:                    req.Seed,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "GENERATION_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, fromInstance(ins))
}
