// Package analysis turns period statistics into a health score, an issue
// list and recommendations.
package analysis

import "wifi-monitor/internal/models"

// NoDataRating labels a period without samples.
const NoDataRating = "No Data"

// Score rates a period from 0 to 100. It starts at 100 and only ever
// deducts. A period without samples has nothing to deduct for.
func Score(stats models.PeriodStatistics) int {
	score := 100
	if stats.SampleCount == 0 {
		return score
	}

	if stats.ConnectionUptimePct < 100 {
		score -= int((100 - stats.ConnectionUptimePct) * 2)
	}
	if stats.InternetUptimePct < 100 {
		score -= int((100 - stats.InternetUptimePct) * 1.5)
	}

	if avg := stats.SignalAvgDBM; avg != nil {
		score -= band(-*avg, 60, 70, 80)
	}
	if avg := stats.LatencyAvgMs; avg != nil {
		score -= band(*avg, 50, 100, 200)
	}
	if avg := stats.JitterAvgMs; avg != nil {
		score -= band(*avg, 15, 30, 50)
	}
	score -= band(stats.PacketLossAvgPct, 0.1, 1, 5)

	score -= stats.CriticalEvents * 5
	score -= stats.ErrorEvents * 2
	score -= stats.WarningEvents

	return max(0, min(100, score))
}

// band deducts 5, 10 or 20 points once v is strictly above the low,
// mid or high bound.
func band(v, low, mid, high float64) int {
	switch {
	case v > high:
		return 20
	case v > mid:
		return 10
	case v > low:
		return 5
	default:
		return 0
	}
}

// PeriodRating is Rating(Score(stats)), or NoDataRating for an empty period.
func PeriodRating(stats models.PeriodStatistics) string {
	if stats.SampleCount == 0 {
		return NoDataRating
	}
	return Rating(Score(stats))
}

// Rating buckets a health score.
func Rating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

func SignalRating(dbm int) string {
	switch {
	case dbm >= -50:
		return "Excellent"
	case dbm >= -60:
		return "Good"
	case dbm >= -70:
		return "Fair"
	case dbm >= -80:
		return "Poor"
	default:
		return "Very Poor"
	}
}

func LatencyRating(ms float64) string {
	switch v := int(ms); {
	case v <= 20:
		return "Excellent"
	case v <= 50:
		return "Good"
	case v <= 100:
		return "Fair"
	case v <= 200:
		return "Poor"
	default:
		return "Very Poor"
	}
}

func JitterRating(ms float64) string {
	switch v := int(ms); {
	case v <= 10:
		return "Excellent"
	case v <= 20:
		return "Good"
	case v <= 30:
		return "Fair"
	case v <= 50:
		return "Poor"
	default:
		return "Very Poor"
	}
}
