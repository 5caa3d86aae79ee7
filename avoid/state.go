package avoid

// State is the avoidance latch.
type State uint8

const (
	// Inactive means no obstacle is being avoided.
	Inactive State = iota
	// Active means avoidance is latched and the last reading was trustworthy.
	Active
	// ActiveUntrusted means avoidance is latched but the last reading was at or
	// below the validity floor.
	ActiveUntrusted
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case ActiveUntrusted:
		return "active-untrusted"
	}
	return "unknown"
}

// Latched is true while avoidance is engaged, trusted or not.
func (s State) Latched() bool {
	return s != Inactive
}

// Status is the state carried from one tick to the next. Previous is the latch
// as it stood at the end of the preceding tick; the stabilizer resets the
// integrator when it is false.
type Status struct {
	State    State
	Previous bool
}

type event uint8

const (
	// the monitor observed a reading
	eventDetect event = iota
	// the stabilizer finished its tick
	eventSettle
)

// transition is the only place the latch changes. The monitor and the
// stabilizer feed it their own event with the tick's reading.
func transition(cfg *Config, st Status, ev event, distanceCm float64) Status {
	switch ev {
	case eventDetect:
		valid := cfg.valid(distanceCm)
		switch {
		case valid && distanceCm <= cfg.StandoffCm:
			st.State = Active
		case !valid && st.Previous:
			st.State = Inactive
			st.Previous = false
		case st.State.Latched() && valid:
			st.State = Active
		case st.State.Latched():
			// an invalid reading on the tick the latch was set does not clear it
			st.State = ActiveUntrusted
		}
	case eventSettle:
		if distanceCm > cfg.ExitDistanceCm() {
			st.State = Inactive
		}
		st.Previous = st.State.Latched()
	}
	return st
}

// Detect applies a reading to st and reports whether avoidance should act this
// tick: only when latched and the reading is trustworthy.
func Detect(cfg *Config, st Status, distanceCm float64) (Status, bool) {
	next := transition(cfg, st, eventDetect, distanceCm)
	return next, cfg.valid(distanceCm) && next.State.Latched()
}

// Settle applies the stabilizer's end of tick bookkeeping: leaving avoidance
// once past the exit distance and recording the latch for the next tick.
func Settle(cfg *Config, st Status, distanceCm float64) Status {
	return transition(cfg, st, eventSettle, distanceCm)
}
