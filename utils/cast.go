package utils

func CastTo[T any](src any) (target T, ok bool) {
	target, ok = src.(T)
	return
}
