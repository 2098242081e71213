package util

// CheckError panics if `e` contains an error. It is only meant for data
// that ships inside the binary, where a failure is a build defect.
func CheckError(e error) {
	if e != nil {
		panic(e)
	}
}

// Must returns v, panicking like CheckError when err is set.
func Must[T any](v T, err error) T {
	CheckError(err)
	return v
}
