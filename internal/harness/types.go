package harness

// Result is the outcome of running a scenario.
type Result struct {
	// Passed indicates overall success: every expectation and principle held.
	Passed bool `json:"passed"`

	// Errors contains one message per failed expectation or principle.
	// Empty if Passed is true.
	Errors []string `json:"errors"`

	// Declaration and Negation are the dialect-neutral renderings.
	Declaration string `json:"declaration,omitempty"`
	Negation    string `json:"negation,omitempty"`

	// DependentFields lists the clause's field names, depth-first.
	DependentFields []string `json:"dependent_fields,omitempty"`

	// SQL maps dialect names to rendered CHECK expressions.
	SQL map[string]string `json:"sql,omitempty"`

	// ConstructionError is set when the clause failed to build.
	ConstructionError string `json:"construction_error,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Passed: true,
		Errors: []string{},
		SQL:    make(map[string]string),
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Passed = false
}
