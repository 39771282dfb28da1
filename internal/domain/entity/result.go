package entity

// Result pairs a mutating operation's payload with a human-readable
// narration of what was written and where. It is built per call and
// carries no identity of its own.
type Result struct {
	Data      map[string]interface{}
	Narration string
}

// NewResult creates a result envelope.
func NewResult(data map[string]interface{}, narration string) *Result {
	return &Result{
		Data:      data,
		Narration: narration,
	}
}
