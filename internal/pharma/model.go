package pharma

// Model maps a dose to a predicted response.
type Model interface {
	Response(dose float64) float64
	Validate() error
}

// Configurable exposes named parameters for interactive tuning.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Sample is one (dose, response) pair on a curve.
type Sample struct {
	Dose     float64
	Response float64
}

// Curve is an ordered sequence of samples with strictly increasing doses.
type Curve []Sample

// Doses returns the dose values in order.
func (c Curve) Doses() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		out[i] = s.Dose
	}
	return out
}

// Responses returns the response values in order.
func (c Curve) Responses() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		out[i] = s.Response
	}
	return out
}
