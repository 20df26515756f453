package snapshotmatcher

import (
	"sync"

	"snapshot-matcher/internal/log"
)

// Matcher is the capability a test framework needs from an assertion.
type Matcher interface {
	Matches(value any) bool
	DescribeFailure() string
}

var _ Matcher = (*SnapshotMatcher)(nil)

// SnapshotMatcher asserts that a value matches one snapshot file. Its path
// is resolved on first use and then fixed for the matcher's lifetime.
type SnapshotMatcher struct {
	session *Session
	site    Site
	name    string

	once sync.Once
	id   Identity
	err  error

	mu   sync.Mutex
	last Result
}

// Identity resolves the snapshot location, advancing the session counter
// only on the first call.
func (m *SnapshotMatcher) Identity() (Identity, error) {
	m.once.Do(func() {
		m.id, m.err = m.session.resolver.Resolve(m.site, m.name)
	})
	return m.id, m.err
}

// Path returns the snapshot file path, or "" if it cannot be resolved.
func (m *SnapshotMatcher) Path() string {
	id, err := m.Identity()
	if err != nil {
		return ""
	}
	return id.Path
}

// Matches creates the snapshot on first run and compares against it
// afterwards. Failures to read or write are logged and reported as false.
func (m *SnapshotMatcher) Matches(value any) bool {
	id, err := m.Identity()
	if err != nil {
		log.Error("could not resolve snapshot", "site", m.site.String(), "error", err)
		m.setLast(Result{Err: err})
		return false
	}
	res := m.session.Evaluate(value, id.Path)
	m.setLast(res)
	return res.Passed
}

// DescribeFailure names the snapshot the value was compared with.
func (m *SnapshotMatcher) DescribeFailure() string {
	return "Object should match snapshot at " + m.Path()
}

// Result returns the outcome of the last Matches call.
func (m *SnapshotMatcher) Result() Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Report returns the mismatch report of the last Matches call, if any.
func (m *SnapshotMatcher) Report() string { return m.Result().Report }

func (m *SnapshotMatcher) setLast(r Result) {
	m.mu.Lock()
	m.last = r
	m.mu.Unlock()
}
