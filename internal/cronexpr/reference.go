package cronexpr

import (
	"fmt"
	"strings"
)

// ReferenceError is returned by FunctionReference when asked to build a
// symbolic reference to something that cannot be looked up again by name
// (spec.md §7's ReferenceError).
type ReferenceError struct {
	Name string
}

func (e *ReferenceError) Error() string {
	return "cannot create a reproducible reference to a nested function"
}

// FunctionReference builds a "package:name" reference string for a
// callable, the way a persisted schedule records which function to call
// without serializing the function itself. qualifiedName is expected to
// look like the output of runtime.FuncForPC(pc).Name(), e.g.
// "github.com/example/pkg.DoThing" or, for a closure,
// "github.com/example/pkg.DoThing.func1" — the latter has no stable
// identity across builds and is rejected, mirroring the Python original's
// rejection of functions defined inside another function
// ([[original_source]] asphalt.tasks.util.create_reference).
func FunctionReference(qualifiedName string) (string, error) {
	if qualifiedName == "" {
		return "", fmt.Errorf("cronexpr: empty function reference")
	}
	if strings.Contains(qualifiedName, ".func") {
		return "", &ReferenceError{Name: qualifiedName}
	}
	slash := strings.LastIndex(qualifiedName, "/")
	if dot := strings.Index(qualifiedName[slash+1:], "."); dot >= 0 {
		sep := slash + 1 + dot
		return qualifiedName[:sep] + ":" + qualifiedName[sep+1:], nil
	}
	return qualifiedName, nil
}
