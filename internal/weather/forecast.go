package weather

import "time"

// outlookStride is the number of 3-hour forecast entries per day.
const outlookStride = 8

// DailyExtremes returns the expected max/min temperature across the forecast
// points whose calendar date in tz matches now's date in tz. ok is false when
// no point matches, e.g. the provider's first entry is already past midnight;
// callers omit the range line in that case.
func DailyExtremes(points []ForecastPoint, now time.Time, tz *time.Location) (max, min float64, ok bool) {
	y, m, d := now.In(tz).Date()

	for _, p := range points {
		py, pm, pd := time.Unix(p.Dt, 0).In(tz).Date()
		if py != y || pm != m || pd != d {
			continue
		}
		if !ok {
			max, min, ok = p.Main.TempMax, p.Main.TempMin, true
			continue
		}
		if p.Main.TempMax > max {
			max = p.Main.TempMax
		}
		if p.Main.TempMin < min {
			min = p.Main.TempMin
		}
	}

	return max, min, ok
}

// FiveDayOutlook samples every eighth entry of the chronologically ordered
// 3-hour forecast list, approximating one entry per day. This is a sample,
// not a daily aggregate: temperature and precipitation probability reflect
// only the single sampled slot.
func FiveDayOutlook(points []ForecastPoint) []ForecastPoint {
	var out []ForecastPoint
	for i := 0; i < len(points); i += outlookStride {
		out = append(out, points[i])
	}
	return out
}
