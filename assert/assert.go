package assert

import "github.com/echolume/echolume/elerror"

func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(elerror.New(message, args...))
	}
}
