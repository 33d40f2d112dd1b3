package model

// CounterState is the numbering state shared by all auto-numbered document types.
// OrderSeq is the last document id handed out; unlike the per-type counts it never resets.
type CounterState struct {
	SalidaCount  int `json:"salida"`
	InternoCount int `json:"interno"`
	Year         int `json:"year"`
	OrderSeq     int `json:"orderSeq"`
}

// Count returns the current sequence value for an auto-numbered type.
func (c CounterState) Count(t DocumentType) int {
	switch t {
	case TypeSalida:
		return c.SalidaCount
	case TypeInterno:
		return c.InternoCount
	}
	return 0
}
