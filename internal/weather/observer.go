package weather

// Observer receives the outcome of fetch attempts. Each attempt calls exactly
// one of the two methods exactly once. Calls may arrive from any goroutine.
type Observer interface {
	OnWeatherUpdated(m Model)
	OnWeatherError(err error)
}

// ObserverFuncs adapts a pair of functions to Observer. Nil funcs are skipped.
type ObserverFuncs struct {
	Updated func(Model)
	Failed  func(error)
}

func (o ObserverFuncs) OnWeatherUpdated(m Model) {
	if o.Updated != nil {
		o.Updated(m)
	}
}

func (o ObserverFuncs) OnWeatherError(err error) {
	if o.Failed != nil {
		o.Failed(err)
	}
}

// Notify delivers the outcome of one attempt to o.
func Notify(o Observer, m Model, err error) {
	if err != nil {
		o.OnWeatherError(err)
		return
	}
	o.OnWeatherUpdated(m)
}
