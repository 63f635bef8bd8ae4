package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIndicator(t *testing.T) {
	tests := []struct {
		name    string
		want    Indicator
		wantErr bool
	}{
		{"radon", Radon, false},
		{" VOCS ", VOCs, false},
		{"co2", CO2, false},
		{"h2s", H2S, false},
		{"FunctionalGenes", FG, false},
		{"functional_genes", FG, false},
		{"benzene", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupIndicator(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogue(t *testing.T) {
	assert.Equal(t, []Indicator{Radon, VOCs, CO2, O2, CH4, H2S, H2, FG}, AllIndicators())
	assert.Equal(t, []Indicator{Radon, VOCs, CO2, O2, CH4, H2S, H2}, ScoredIndicators())

	cat := Catalogue()
	cat[0].Unit = "changed"
	assert.Equal(t, "Bq/m³", Radon.Unit(), "catalogue copies must not leak")

	unknown := Indicator("Benzene").Info()
	assert.Equal(t, "Benzene", unknown.Label)
	assert.Empty(t, unknown.Unit)
}

func TestScoreTables(t *testing.T) {
	for _, ind := range ScoredIndicators() {
		table, ok := LookupScoreTable(ind)
		require.True(t, ok, ind)
		assert.NoError(t, table.Validate(), ind)
	}

	_, ok := LookupScoreTable(FG)
	assert.False(t, ok)

	table, _ := LookupScoreTable(Radon)
	table.Scores[0] = 99
	again, _ := LookupScoreTable(Radon)
	assert.Equal(t, 11, again.Scores[0])
}

func TestScoreTableValidate(t *testing.T) {
	bad := ScoreTable{Breakpoints: []Breakpoint{{1, false}}, Scores: []int{0}}
	assert.Error(t, bad.Validate())

	unordered := ScoreTable{Breakpoints: []Breakpoint{{5, false}, {1, false}}, Scores: []int{0, 1, 2}}
	assert.Error(t, unordered.Validate())
}

func TestUnitDivisor(t *testing.T) {
	assert.InDelta(t, 1000, UnitDivisor(VOCs), 0)
	assert.InDelta(t, 1e6, UnitDivisor(CO2), 0)
	assert.InDelta(t, 1, UnitDivisor(Radon), 0)
}

func TestParseFieldSpec(t *testing.T) {
	ind, col, err := ParseFieldSpec("radon= Rn ")
	require.NoError(t, err)
	assert.Equal(t, Radon, ind)
	assert.Equal(t, "Rn", col)

	for _, spec := range []string{"radon", "radon=", "unknown=col"} {
		_, _, err := ParseFieldSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "-", FormatOptionalInt(nil))
	assert.Equal(t, "7", FormatOptionalInt(IntPtr(7)))
	assert.Equal(t, "-", FormatOptionalFloat(nil, 2))
	assert.Equal(t, "1.50", FormatOptionalFloat(FloatPtr(1.5), 2))
}

func TestLevelValue(t *testing.T) {
	assert.InDelta(t, 4, ScoreRecord{OtherSoilGasScore: 4}.LevelValue(), 0)
	assert.InDelta(t, 20, ScoreRecord{OtherSoilGasScore: 9, AllIndicatorScore: IntPtr(20)}.LevelValue(), 0)
}

func TestComponentNames(t *testing.T) {
	r := PCAResult{VarianceRatio: []float64{0.6, 0.3, 0.1}}
	assert.Equal(t, []string{"PC1", "PC2", "PC3"}, r.ComponentNames())
}

func TestEnrichPoints(t *testing.T) {
	points := []PointResult{
		{SamplePoint: SamplePoint{ID: "A"}, ScoreRecord: ScoreRecord{Label: SourceLabel}},
		{SamplePoint: SamplePoint{ID: "B"}, ScoreRecord: ScoreRecord{Label: BelowThresholdLabel}},
	}
	enriched := EnrichPoints(points)
	require.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Critical Risk Point", enriched[0].DisplayName)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Marginal Risk Point", enriched[1].DisplayName)
}

func TestNewPointResultRecord(t *testing.T) {
	r := PointResult{
		SamplePoint: SamplePoint{ID: "P1", X: 1.5, Y: 2.5},
		ScoreRecord: ScoreRecord{
			Scores:               map[Indicator]*int{Radon: IntPtr(11), VOCs: IntPtr(6), CO2: IntPtr(22)},
			OtherSoilGasScore:    28,
			AllIndicatorScore:    IntPtr(39),
			Label:                SourceLabel,
			ScopeOfContamination: true,
			Exceedance:           true,
		},
	}
	i32 := func(v int32) *int32 { return &v }
	want := PointResultRecord{
		AnalysisID:           3,
		PointID:              "P1",
		X:                    1.5,
		Y:                    2.5,
		RadonScore:           i32(11),
		VOCsScore:            i32(6),
		CO2Score:             i32(22),
		OtherSoilGasScore:    28,
		AllIndicatorScore:    i32(39),
		Label:                string(SourceLabel),
		ScopeOfContamination: true,
	}
	if diff := cmp.Diff(want, NewPointResultRecord(3, r)); diff != "" {
		t.Errorf("NewPointResultRecord mismatch (-want +got):\n%s", diff)
	}
}
