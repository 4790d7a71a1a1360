package formula

import "tradecalc/core/precision"

// AirflowInput describes a room for ventilation sizing
type AirflowInput struct {
	FloorAreaFt2    float64 `json:"floor_area_ft2"`
	CeilingHeightFt float64 `json:"ceiling_height_ft"`
	ACH             float64 `json:"ach"`
}

// AirflowResult is the required airflow
type AirflowResult struct {
	VolumeFt3 float64 `json:"volume_ft3"`
	CFM       float64 `json:"cfm"`
}

// Airflow computes cubic feet per minute needed to replace the room's air
// ACH times per hour.
func Airflow(in AirflowInput) AirflowResult {
	volume := in.FloorAreaFt2 * in.CeilingHeightFt
	cfm := volume * in.ACH / 60

	return AirflowResult{
		VolumeFt3: precision.Round(volume, precision.Hundreds),
		CFM:       precision.Round(cfm, precision.Hundreds),
	}
}
