package config

// DifficultyManager derives wave-dependent parameters from the multiplier.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// InitialMultiplier returns the multiplier for wave 1.
func (d *DifficultyManager) InitialMultiplier() float64 {
	return d.cfg.InitialMultiplier
}

// IsEnabled returns whether the multiplier grows between waves.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.WaveIncrement > 0
}

// NextMultiplier returns the multiplier for the wave after one played at m.
func (d *DifficultyManager) NextMultiplier(m float64) float64 {
	return m + d.cfg.WaveIncrement
}

// MultiplierForWave returns the multiplier in effect during the given wave.
func (d *DifficultyManager) MultiplierForWave(wave int) float64 {
	if wave < 1 {
		wave = 1
	}
	return d.cfg.InitialMultiplier + float64(wave-1)*d.cfg.WaveIncrement
}

// FireChance returns the per-frame enemy fire probability at multiplier m.
func (d *DifficultyManager) FireChance(m float64) float64 {
	return d.cfg.FireChance * m
}

// Speed scales a base velocity by the multiplier.
func (d *DifficultyManager) Speed(base, m float64) float64 {
	return base * m
}
