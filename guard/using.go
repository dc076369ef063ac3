package guard

// Using arms a guard, runs body with it and drops the guard when body
// returns or panics. If body consumes the guard, nothing runs on the way out.
//
// Usage:
//
//	n, err := guard.Using(f, guard.BestEffort((*os.File).Close),
//	    func(g *guard.WithDrop[*os.File, func(*os.File)]) (int64, error) {
//	        return io.Copy(dst, g.Get())
//	    })
func Using[T any, F ~func(T), R any](
	inner T,
	dropFn F,
	body func(*WithDrop[T, F]) (R, error),
	opts ...Option,
) (R, error) {
	w := New(inner, dropFn, opts...)
	defer w.Drop()
	return body(w)
}
