package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rseclp/internal/api/models"
	"rseclp/internal/feasibility"
	"rseclp/internal/model"
)

// CheckRequest is the JSON body of POST /api/v1/check: an Instance plus a
// candidate schedule to verify against the adversarial uncertainty model.
type CheckRequest struct {
	Instance   models.InstancePayload `json:"instance" binding:"required"`
	StartTimes []int                  `json:"startTimes" binding:"required"`
}

// Check handles POST /api/v1/check: it reports whether a candidate schedule
// survives every monotone right-shift delay scenario bounded by the
// instance's adversarial deviation, returning the first violated metering
// interval when it does not.
func Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ins, err := toInstance(req.Instance)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INSTANCE", err.Error())
		return
	}
	if len(req.StartTimes) != ins.NumOperations() {
		respondError(c, http.StatusBadRequest, "INVALID_START_TIMES", "startTimes length must equal numOperations")
		return
	}

	result := feasibility.Check(ins, model.StartTimes(req.StartTimes))

	resp := models.FeasibilityResponse{
		Feasible: result.Feasible,
		Delays:   result.Delays,
	}
	if result.HasViolation {
		idx := result.ViolatedInterval.Index
		resp.ViolatedIntervalIndex = &idx
	}
	c.JSON(http.StatusOK, resp)
}
