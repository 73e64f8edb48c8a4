//go:build !unix

package input

func advise(data []byte) {}
