package executor

// GraphQLError is one entry of the response "errors" list. Extensions carries
// codes such as BAD_USER_INPUT from resolver errors.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string { return e.Message }

// ExecutionResult is the response body of one operation.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
