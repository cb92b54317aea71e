package metrics

const (
	RampStepsN = "steplimit_ramp_steps_total"
	RampStepsH = "Total number of limiter advances performed by the ramp loop"

	RampTargetsReachedN = "steplimit_ramp_targets_reached_total"
	RampTargetsReachedH = "Total number of targets the ramp loop has reached"

	RampValueN = "steplimit_ramp_value"
	RampValueH = "Current ramp output value"
)
