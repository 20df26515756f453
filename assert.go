package snapshotmatcher

import "snapshot-matcher/internal/identity"

// TestingT is the subset of testing.TB used by the assertion helpers.
type TestingT interface {
	Helper()
	Name() string
	Errorf(format string, args ...any)
}

// Assert checks value against the snapshot of the running test, named
// <package>/<t.Name()>-<n>. It reports a failure through t.Errorf and
// returns whether the value matched.
func Assert(t TestingT, value any) bool {
	t.Helper()
	return Default().assert(t, "", value)
}

// AssertNamed is Assert with an explicit snapshot name.
func AssertNamed(t TestingT, name string, value any) bool {
	t.Helper()
	return Default().assert(t, name, value)
}

// Assert is the session-scoped form of the package-level Assert.
func (s *Session) Assert(t TestingT, value any) bool {
	t.Helper()
	return s.assert(t, "", value)
}

// AssertNamed is the session-scoped form of the package-level AssertNamed.
func (s *Session) AssertNamed(t TestingT, name string, value any) bool {
	t.Helper()
	return s.assert(t, name, value)
}

func (s *Session) assert(t TestingT, name string, value any) bool {
	t.Helper()
	site, err := identity.CallerSite(pkgPath)
	if err != nil {
		t.Errorf("snapshot: %v", err)
		return false
	}
	site.Method = t.Name()

	m, err := s.MatchesSnapshotAt(site, name)
	if err != nil {
		t.Errorf("snapshot: %v", err)
		return false
	}
	if m.Matches(value) {
		return true
	}
	res := m.Result()
	switch {
	case res.Report != "":
		t.Errorf("%s\n%s", m.DescribeFailure(), res.Report)
	case res.Err != nil:
		t.Errorf("%s: %v", m.DescribeFailure(), res.Err)
	default:
		t.Errorf("%s", m.DescribeFailure())
	}
	return false
}
