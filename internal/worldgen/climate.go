package worldgen

import "voxelgen/internal/noise"

// Climate is a point in the three-axis climate space. Each axis is nominally
// in [-1, 1]. Continentality below zero reads as open sea.
type Climate struct {
	Continentality float64
	Temperature    float64
	Humidity       float64
}

// Climate fields are sampled at biome-cell resolution, not per block: one
// climate point per Voronoi cell keeps whole cells in a single biome.
const (
	climateScale = 1.0 / 8

	continentalityFrequency = 1.0
	temperatureFrequency    = 2.0
	humidityFrequency       = 2.0

	climateOctaves = 6
)

// climateMap derives the climate point of a biome cell from three
// independent fractal fields plus cross-axis coupling.
type climateMap struct {
	continentality noise.Fractal2
	temperature    noise.Fractal2
	humidity       noise.Fractal2
}

func newClimateMap(seq *noise.SeedSeq) climateMap {
	return climateMap{
		continentality: noise.NewFractal2(seq, climateOctaves),
		temperature:    noise.NewFractal2(seq, climateOctaves),
		humidity:       noise.NewFractal2(seq, climateOctaves),
	}
}

// at returns the climate of the biome cell at lattice coordinate (cx, cz).
func (m *climateMap) at(cx, cz int32) Climate {
	x := float64(cx) * climateScale
	z := float64(cz) * climateScale

	// A 6-octave fractal spans roughly [-2, 2]; halve into nominal range.
	cont := clampUnit(m.continentality.Sample(x*continentalityFrequency, z*continentalityFrequency) * 0.5)
	temp := clampUnit(m.temperature.Sample(x*temperatureFrequency, z*temperatureFrequency) * 0.5)
	hum := clampUnit(m.humidity.Sample(x*humidityFrequency, z*humidityFrequency) * 0.5)

	// Couple the axes: coasts are wetter than the deep inland, the inland
	// runs hotter, and humid air moderates the heat.
	hum = clampUnit(hum - cont*0.25)
	temp = clampUnit(temp + cont*0.25)
	if hum > 0 {
		temp = clampUnit(temp - hum*0.25)
	}

	return Climate{Continentality: cont, Temperature: temp, Humidity: hum}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
