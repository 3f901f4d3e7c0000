package harness

// Result is the outcome of running one scenario.
type Result struct {
	// Pass indicates the scenario met its expectation.
	Pass bool `json:"pass"`

	// Plan is the plan text, nil if building failed.
	Plan []byte `json:"-"`

	// Merged is the merged document text, nil if building or execution failed.
	Merged []byte `json:"-"`

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a mismatch message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Outcome pairs a scenario file with its load or run result.
type Outcome struct {
	Path     string
	Scenario *Scenario // nil if loading failed
	Result   *Result   // nil if loading or running failed
	Err      error
}
