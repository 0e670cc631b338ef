package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER — Produces TextData for the share comparison
// ============================================================================

// BuildShareSummary picks the largest share increase and decline.
// Returns nil for an absent share table.
func BuildShareSummary(s *ShareTable) *TextData {
	if s == nil {
		return nil
	}

	period := fmt.Sprintf("%d → %d", s.YearA, s.YearB)
	if len(s.Records) == 0 {
		return &TextData{Value: "No regions in common", Period: period}
	}

	// Records are sorted ascending: first is the steepest decline, last the
	// steepest increase.
	first := s.Records[0]
	last := s.Records[len(s.Records)-1]

	summary := &TextData{
		Period: period,
		Count:  len(s.Records),
	}
	if last.PointChange > 0 {
		summary.Increase = &RegionChange{Region: last.Region, PointChange: last.PointChange, Direction: directionOf(last.PointChange)}
	}
	if first.PointChange < 0 {
		summary.Decline = &RegionChange{Region: first.Region, PointChange: first.PointChange, Direction: directionOf(first.PointChange)}
	}

	switch {
	case summary.Increase != nil && summary.Decline != nil:
		summary.Value = fmt.Sprintf("%s %s the most (%s); %s %s the most (%s)",
			summary.Increase.Region, summary.Increase.Direction, FormatPointChange(summary.Increase.PointChange),
			summary.Decline.Region, summary.Decline.Direction, FormatPointChange(summary.Decline.PointChange))
	case summary.Increase != nil:
		summary.Value = fmt.Sprintf("%s %s the most (%s)",
			summary.Increase.Region, summary.Increase.Direction, FormatPointChange(summary.Increase.PointChange))
	case summary.Decline != nil:
		summary.Value = fmt.Sprintf("%s %s the most (%s)",
			summary.Decline.Region, summary.Decline.Direction, FormatPointChange(summary.Decline.PointChange))
	default:
		summary.Value = "No change in regional shares"
	}

	return summary
}

func directionOf(change float64) string {
	switch {
	case change > 0:
		return "increased"
	case change < 0:
		return "decreased"
	default:
		return "unchanged"
	}
}
