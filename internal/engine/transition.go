// Phase-transition detection with dwell-time hysteresis.
package engine

// Transition tracks how long the order parameter has held above the
// critical threshold. Crystallized is a one-way flag: once set it never
// reverts and dwell time stops being tracked.
type Transition struct {
	CriticalThreshold float64 `json:"critical_threshold"`
	MinDwellTime      float64 `json:"min_dwell_time"`
	DwellTime         float64 `json:"dwell_time"`
	Crystallized      bool    `json:"crystallized"`
}

// NewTransition creates a subcritical detector.
func NewTransition(threshold, minDwell float64) Transition {
	return Transition{
		CriticalThreshold: threshold,
		MinDwellTime:      minDwell,
	}
}

// Observe feeds one step's order parameter into the detector and returns
// true the moment crystallization fires. Dwell time accumulates by dt while
// the order parameter exceeds the threshold and resets to zero the instant
// it drops below.
func (tr *Transition) Observe(orderParameter, dt float64) bool {
	if tr.Crystallized {
		return false
	}

	if orderParameter > tr.CriticalThreshold {
		tr.DwellTime += dt
		if tr.DwellTime > tr.MinDwellTime {
			tr.Crystallized = true
			return true
		}
	} else {
		tr.DwellTime = 0
	}
	return false
}
