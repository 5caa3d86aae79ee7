package inject

import (
	"go.viam.com/pitchguard/control"
)

// PID is an injected pitch controller. Calls are recorded in order.
type PID struct {
	*control.PID
	SetInputFilterDFunc func(input float64)
	PIFunc              func() float64
	ResetIFunc          func()
	SetGainsFunc        func(gains control.Gains)
	Calls               []string
	Inputs              []float64
}

// SetInputFilterD calls the injected SetInputFilterD or the real version.
func (p *PID) SetInputFilterD(input float64) {
	p.Calls = append(p.Calls, "SetInputFilterD")
	p.Inputs = append(p.Inputs, input)
	if p.SetInputFilterDFunc == nil {
		p.PID.SetInputFilterD(input)
		return
	}
	p.SetInputFilterDFunc(input)
}

// PI calls the injected PI or the real version.
func (p *PID) PI() float64 {
	p.Calls = append(p.Calls, "PI")
	if p.PIFunc == nil {
		return p.PID.PI()
	}
	return p.PIFunc()
}

// ResetI calls the injected ResetI or the real version.
func (p *PID) ResetI() {
	p.Calls = append(p.Calls, "ResetI")
	if p.ResetIFunc == nil {
		p.PID.ResetI()
		return
	}
	p.ResetIFunc()
}

// SetGains calls the injected SetGains or the real version.
func (p *PID) SetGains(gains control.Gains) {
	p.Calls = append(p.Calls, "SetGains")
	if p.SetGainsFunc == nil {
		p.PID.SetGains(gains)
		return
	}
	p.SetGainsFunc(gains)
}
