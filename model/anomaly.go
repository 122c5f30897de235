package model

// AnomalyLabel classifies a single telemetry sample.
type AnomalyLabel int

const (
	LabelNormal AnomalyLabel = iota
	LabelAnomalous
)

func (l AnomalyLabel) String() string {
	switch l {
	case LabelNormal:
		return "normal"
	case LabelAnomalous:
		return "anomalous"
	default:
		return "unknown"
	}
}
