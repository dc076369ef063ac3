package guard

import "cmp"

// Equal compares the wrapped values only. The actions may differ in type.
func Equal[T comparable, F1 ~func(T), F2 ~func(T)](a *WithDrop[T, F1], b *WithDrop[T, F2]) bool {
	return a.Get() == b.Get()
}

// Compare orders two guards by their wrapped values, as cmp.Compare does.
func Compare[T cmp.Ordered, F1 ~func(T), F2 ~func(T)](a *WithDrop[T, F1], b *WithDrop[T, F2]) int {
	return cmp.Compare(a.Get(), b.Get())
}
