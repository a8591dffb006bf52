package models

// LotConfig is the lot's capacity and current hourly rate. It is
// consumed, not owned: vaga reads it from local configuration the same
// way the web dashboard read its static lot file.
type LotConfig struct {
	CarCapacity  int
	MotoCapacity int
	HourlyRate   float64
}
