package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rseclp/internal/api/models"
	"rseclp/internal/feasibility"
	"rseclp/internal/jsonio"
	"rseclp/internal/model"
	"rseclp/internal/objective"
	"rseclp/internal/pipeline"
	"rseclp/internal/solver"
)

// Solve handles POST /api/v1/solve: it builds an Instance and a chain of
// solver stages from the request body, runs the multi-stage pipeline, and
// returns the resulting schedule alongside an independent feasibility check.
func Solve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ins, err := toInstance(req.Instance)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INSTANCE", err.Error())
		return
	}

	stages := make([]solver.Solver, 0, len(req.Stages))
	for _, s := range req.Stages {
		stage, err := jsonio.ResolveStage(s.Name, ins)
		if err != nil {
			respondError(c, http.StatusBadRequest, "UNKNOWN_STAGE", err.Error())
			return
		}
		stages = append(stages, stage)
	}

	timeLimit := time.Duration(req.TimeLimitInMilliseconds) * time.Millisecond
	if req.TimeLimitInMilliseconds <= 0 {
		timeLimit = time.Minute
	}

	cfg := solver.Config{
		TimeLimit:         timeLimit,
		Objective:         objective.TotalTardiness{},
		UseInitStartTimes: req.UseInitStartTimes && len(req.InitStartTimes) > 0,
		InitStartTimes:    model.StartTimes(req.InitStartTimes),
		Specialised:       toSpecialisedConfig(req.Stages),
	}

	driver := pipeline.New(ins, stages...)
	result := driver.Solve(cfg)

	check := feasibility.Check(ins, result.StartTimes)

	c.JSON(http.StatusOK, models.SolveResponse{
		Status:                      result.Status.String(),
		StartTimes:                  []int(result.StartTimes),
		ObjectiveValue:              result.ObjectiveValue,
		SolverRuntimeInMilliseconds: result.Runtime.Milliseconds(),
		Optional:                    result.Optional,
		Feasible:                    check.Feasible,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorBody{Error: models.ErrorDetail{Code: code, Message: message}})
}
