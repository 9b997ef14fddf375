package parser

// AngleUnitsPerDegree is the DrawingML fixed-point angle unit.
// Rotation attributes store 1/60000 of a degree, so 5400000 = 90°.
const AngleUnitsPerDegree = 60000.0

// CropUnitsPerPercent is the DrawingML fixed-point percentage unit used by
// source-rectangle crop attributes: 1000 units = 1%.
const CropUnitsPerPercent = 1000.0

// angleToDegrees converts a raw rotation attribute to degrees in [0,360).
func angleToDegrees(raw int64) float64 {
	deg := float64(raw) / AngleUnitsPerDegree
	deg = deg - 360*float64(int64(deg)/360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// cropToPercent converts a raw source-rectangle attribute to a percentage
// clamped to [0,100].
func cropToPercent(raw int64) float64 {
	pct := float64(raw) / CropUnitsPerPercent
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
