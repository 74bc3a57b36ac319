package booster

import "math"

// Nitro is the boost reserve, always within [0, Max].
type Nitro struct {
	amount float64
	max    float64
}

func NewNitro(capacity float64) *Nitro {
	return &Nitro{max: math.Max(capacity, 0)}
}

// Grant adds to the reserve, saturating at the cap.
func (n *Nitro) Grant(v float64) {
	if v <= 0 || math.IsNaN(v) {
		return
	}
	n.amount = math.Min(n.amount+v, n.max)
}

// Drain removes up to v and returns how much was actually taken.
func (n *Nitro) Drain(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	taken := math.Min(v, n.amount)
	n.amount -= taken
	return taken
}

// Burn spends rate*dt while boosting and reports whether any nitro was
// available to spend.
func (n *Nitro) Burn(rate, dt float64) bool {
	if n.amount <= 0 {
		return false
	}
	n.Drain(rate * dt)
	return true
}

func (n *Nitro) Amount() float64 { return n.amount }

func (n *Nitro) Max() float64 { return n.max }

// Percent is the reserve as 0..100.
func (n *Nitro) Percent() float64 {
	if n.max == 0 {
		return 0
	}
	return n.amount / n.max * 100
}

func (n *Nitro) Reset() { n.amount = 0 }
