package identity

import (
	"errors"
	"path"
	"runtime"
	"strings"
)

// ErrResolution is returned when no assertion site can be determined,
// either because the call stack holds no qualifying frame or because an
// explicit site is incomplete.
var ErrResolution = errors.New("identity: no assertion site could be resolved")

// Site names the place in test code where a snapshot assertion runs.
// Class is a package or class name (dots become directory separators),
// Method is the test or function name.
type Site struct {
	Class  string
	Method string
}

// SiteFor builds an explicit site. Prefer it over CallerSite when the caller
// knows its own identity.
func SiteFor(class, method string) Site {
	return Site{Class: class, Method: method}
}

// Validate reports ErrResolution when either part of the site is missing.
func (s Site) Validate() error {
	if strings.TrimSpace(s.Class) == "" || strings.TrimSpace(s.Method) == "" {
		return ErrResolution
	}
	return nil
}

func (s Site) String() string { return s.Class + "." + s.Method }

// maxFrames bounds the stack walk; test frames sit well within it.
const maxFrames = 64

// CallerSite walks the current goroutine's stack and returns the first frame
// outside the Go runtime, the testing package, and every package whose import
// path equals one of ignore. Class is the frame's package name with any _test
// suffix removed; Method is the top-level function enclosing the frame.
func CallerSite(ignore ...string) (Site, error) {
	pcs := make([]uintptr, maxFrames)
	// Skip runtime.Callers and CallerSite.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return Site{}, ErrResolution
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" {
			pkg, fn := splitFuncName(f.Function)
			if !skipFrame(pkg, ignore) {
				site := Site{Class: packageName(pkg), Method: topLevel(fn)}
				if site.Validate() == nil {
					return site, nil
				}
			}
		}
		if !more {
			break
		}
	}
	return Site{}, ErrResolution
}

func skipFrame(pkg string, ignore []string) bool {
	switch {
	case pkg == "runtime", strings.HasPrefix(pkg, "runtime/"):
		return true
	case pkg == "testing", strings.HasPrefix(pkg, "testing/"):
		return true
	}
	for _, p := range ignore {
		if pkg == p {
			return true
		}
	}
	return false
}

// splitFuncName splits a runtime function name such as
// "example.com/a/b.(*T).M.func1" into its import path and the remainder.
// The runtime escapes dots in the last path element as %2e, so the first dot
// after the last slash always ends the package path.
func splitFuncName(name string) (pkg, fn string) {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return name, ""
	}
	return name[:slash+1+dot], name[slash+1+dot+1:]
}

func packageName(pkg string) string {
	base := strings.ReplaceAll(path.Base(pkg), "%2e", ".")
	return strings.TrimSuffix(base, "_test")
}

// topLevel strips receivers, closure suffixes and type parameters:
// "(*T).M.func1" -> "M", "TestX.func2.1" -> "TestX", "F[...]" -> "F".
func topLevel(fn string) string {
	if strings.HasPrefix(fn, "(") {
		if i := strings.Index(fn, ")."); i >= 0 {
			fn = fn[i+2:]
		}
	}
	if i := strings.IndexAny(fn, ".["); i >= 0 {
		fn = fn[:i]
	}
	return fn
}
