package jobs

// Result is the single value delivered by an operation's channel. Exactly
// one of Value and Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Get unpacks the result
func (r Result[T]) Get() (T, error) {
	return r.Value, r.Err
}

// Await blocks until ch delivers or closes. ok is false for the empty
// result, i.e. the channel closed without a value.
func Await[T any](ch <-chan Result[T]) (value T, ok bool, err error) {
	res, ok := <-ch
	if !ok {
		return value, false, nil
	}
	return res.Value, true, res.Err
}
