package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"rseclp/internal/api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func s1Payload() models.InstancePayload {
	return models.InstancePayload{
		NumOperations:          1,
		ReleaseTimes:           []int{0},
		DueDates:               []int{10},
		ProcessingTimes:        []int{5},
		PowerConsumptions:      []float64{1},
		MaxDeviation:           0,
		NumMeteringIntervals:   2,
		LengthMeteringInterval: 5,
		MaxEnergyConsumptions:  []float64{10, 10},
	}
}

func doJSON(t *testing.T, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = req
	handler(ctx)
	return rec
}

func TestSolve_SingleTrivialOperation(t *testing.T) {
	req := models.SolveRequest{
		Instance: s1Payload(),
		Stages:   []models.StagePayload{{Name: "GreedyHeuristics"}},
	}
	rec := doJSON(t, Solve, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.Status != "OPTIMAL" && resp.Status != "FEASIBLE" {
		t.Fatalf("Status = %q, want OPTIMAL or FEASIBLE", resp.Status)
	}
	if !resp.Feasible {
		t.Fatal("expected the independent re-check to report Feasible")
	}
	if resp.ObjectiveValue != 0 {
		t.Fatalf("ObjectiveValue = %v, want 0", resp.ObjectiveValue)
	}
}

func TestSolve_UnknownStageReturnsBadRequest(t *testing.T) {
	req := models.SolveRequest{
		Instance: s1Payload(),
		Stages:   []models.StagePayload{{Name: "NotAStage"}},
	}
	rec := doJSON(t, Solve, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSolve_InvalidInstanceReturnsBadRequest(t *testing.T) {
	payload := s1Payload()
	payload.ProcessingTimes = []int{0}
	req := models.SolveRequest{
		Instance: payload,
		Stages:   []models.StagePayload{{Name: "GreedyHeuristics"}},
	}
	rec := doJSON(t, Solve, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCheck_ReportsViolatedIntervalWitness(t *testing.T) {
	req := CheckRequest{
		Instance: models.InstancePayload{
			NumOperations:          2,
			ReleaseTimes:           []int{0, 0},
			DueDates:               []int{10, 10},
			ProcessingTimes:        []int{3, 3},
			PowerConsumptions:      []float64{4, 4},
			NumMeteringIntervals:   1,
			LengthMeteringInterval: 6,
			MaxEnergyConsumptions:  []float64{18},
		},
		StartTimes: []int{0, 3},
	}
	rec := doJSON(t, Check, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.FeasibilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.Feasible {
		t.Fatal("expected Feasible=false")
	}
	if resp.ViolatedIntervalIndex == nil || *resp.ViolatedIntervalIndex != 0 {
		t.Fatalf("ViolatedIntervalIndex = %v, want pointer to 0", resp.ViolatedIntervalIndex)
	}
}

func TestCheck_WrongStartTimesLength(t *testing.T) {
	req := CheckRequest{Instance: s1Payload(), StartTimes: []int{0, 0}}
	rec := doJSON(t, Check, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGenerate_ReturnsAUsableInstance(t *testing.T) {
	req := GenerateRequest{NumOperations: 5, LengthMeteringInterval: 10, MaxEnergyConsumption: 50, Seed: 3}
	rec := doJSON(t, Generate, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var payload models.InstancePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if payload.NumOperations != 5 {
		t.Fatalf("NumOperations = %d, want 5", payload.NumOperations)
	}
	if _, err := toInstance(payload); err != nil {
		t.Fatalf("the generated payload must convert back into a valid Instance: %v", err)
	}
}
