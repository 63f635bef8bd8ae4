package schema

import "time"

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend             string           `json:"backend"`
	Connected           bool             `json:"connected"`
	TotalRuns           int              `json:"total_runs"`
	LastRunID           int64            `json:"last_run_id"`
	LastRunTime         time.Time        `json:"last_run_time"`
	OldestRunTime       time.Time        `json:"oldest_run_time"`
	TotalPointsAnalyzed int              `json:"total_points_analyzed"`
	TableSizes          map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the sdphc_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID          int64
	RunUUID             string
	Method              string
	StartTime           time.Time
	EndTime             *time.Time
	RunDurationMs       *int32
	TotalPointsAnalyzed int32
	ConfigParams        *string
}

// PointResultRecord represents a row from the sdphc_point_results table.
type PointResultRecord struct {
	AnalysisID           int64
	PointID              string
	X                    float64
	Y                    float64
	RadonScore           *int32
	VOCsScore            *int32
	CO2Score             *int32
	O2Score              *int32
	CH4Score             *int32
	H2Score              *int32
	H2SScore             *int32
	OtherSoilGasScore    int32
	AllIndicatorScore    *int32
	Label                string
	ScopeOfContamination bool
}

// NewPointResultRecord flattens a point result for storage.
func NewPointResultRecord(analysisID int64, r PointResult) PointResultRecord {
	score := func(ind Indicator) *int32 {
		s := r.Score(ind)
		if s == nil {
			return nil
		}
		v := int32(*s)
		return &v
	}
	var all *int32
	if r.AllIndicatorScore != nil {
		v := int32(*r.AllIndicatorScore)
		all = &v
	}
	return PointResultRecord{
		AnalysisID:           analysisID,
		PointID:              r.ID,
		X:                    r.X,
		Y:                    r.Y,
		RadonScore:           score(Radon),
		VOCsScore:            score(VOCs),
		CO2Score:             score(CO2),
		O2Score:              score(O2),
		CH4Score:             score(CH4),
		H2Score:              score(H2),
		H2SScore:             score(H2S),
		OtherSoilGasScore:    int32(r.OtherSoilGasScore),
		AllIndicatorScore:    all,
		Label:                string(r.Label),
		ScopeOfContamination: r.ScopeOfContamination,
	}
}
