package models

// VerifyResult is the outcome of looking up one command's endpoint in an API document
type VerifyResult struct {
	Command string `json:"command"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Found   bool   `json:"found"`

	// Set from the document when the endpoint was found
	OperationID string `json:"operation_id,omitempty"`
}

// VerifySummary collects the results for every checked command
type VerifySummary struct {
	Document string         `json:"document"`
	Total    int            `json:"total"`
	Found    int            `json:"found"`
	Missing  int            `json:"missing"`
	Results  []VerifyResult `json:"results"`
}

// AddResult adds a result to the summary and updates the counters
func (s *VerifySummary) AddResult(result VerifyResult) {
	s.Total++
	s.Results = append(s.Results, result)
	if result.Found {
		s.Found++
	} else {
		s.Missing++
	}
}

// MissingResults returns the results whose endpoint was not found
func (s *VerifySummary) MissingResults() []VerifyResult {
	var missing []VerifyResult
	for _, r := range s.Results {
		if !r.Found {
			missing = append(missing, r)
		}
	}
	return missing
}
