package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewVerdict_Decide(t *testing.T) {
	tests := []struct {
		name      string
		riskLevel RiskLevel
		want      Decision
	}{
		{"high blocks", "HIGH", DecisionBlock},
		{"critical lowercase blocks", "critical", DecisionBlock},
		{"mixed case high blocks", "HiGh", DecisionBlock},
		{"low passes", "LOW", DecisionPass},
		{"medium passes", "MEDIUM", DecisionPass},
		{"unknown passes", "UNKNOWN", DecisionPass},
		{"empty passes", "", DecisionPass},
		{"unrecognized passes", "SEVERE", DecisionPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ReviewVerdict{RiskLevel: tt.riskLevel, Summary: "s"}
			assert.Equal(t, tt.want, v.Decide())
		})
	}
}

func TestRiskLevel_Normalize(t *testing.T) {
	assert.Equal(t, RiskLevelHigh, RiskLevel("high").Normalize())
	assert.Equal(t, RiskLevelCritical, RiskLevel("  Critical ").Normalize())
	assert.Equal(t, RiskLevel(""), RiskLevel("").Normalize())
}
