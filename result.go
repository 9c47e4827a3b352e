package countries

// Result is returned by every query. Callers check Success before reading
// Countries; on failure Countries is empty and ErrorMessage explains why.
type Result struct {
	Success      bool
	ErrorMessage string
	Countries    []Country
	Err          error // wraps one of the package sentinel errors on failure
}

func ok(countries []Country) Result {
	if countries == nil {
		countries = []Country{}
	}
	return Result{Success: true, Countries: countries}
}

func fail(err error) Result {
	return Result{
		ErrorMessage: err.Error(),
		Countries:    []Country{},
		Err:          err,
	}
}

// First returns the first matched country, or false when there is none.
func (r Result) First() (Country, bool) {
	if !r.Success || len(r.Countries) == 0 {
		return Country{}, false
	}
	return r.Countries[0], true
}
