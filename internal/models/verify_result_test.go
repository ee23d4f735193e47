package models

import "testing"

func TestVerifySummaryAddResult(t *testing.T) {
	var s VerifySummary
	s.AddResult(VerifyResult{Command: "getWorkflow", Method: "GET", Path: "/api/workflow/{workflowId}", Found: true, OperationID: "getExecutionStatus"})
	s.AddResult(VerifyResult{Command: "pauseWorkflow", Method: "PUT", Path: "/api/workflow/{workflowId}/pause"})
	s.AddResult(VerifyResult{Command: "getTask", Method: "GET", Path: "/api/tasks/{taskId}", Found: true})

	if s.Total != 3 || s.Found != 2 || s.Missing != 1 {
		t.Errorf("Unexpected counters total=%d found=%d missing=%d", s.Total, s.Found, s.Missing)
	}
	if len(s.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(s.Results))
	}

	missing := s.MissingResults()
	if len(missing) != 1 || missing[0].Command != "pauseWorkflow" {
		t.Errorf("Expected pauseWorkflow to be missing, got %+v", missing)
	}
}

func TestVerifySummaryEmpty(t *testing.T) {
	var s VerifySummary
	if s.MissingResults() != nil {
		t.Error("Empty summary should have no missing results")
	}
}
