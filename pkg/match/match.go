// Package match implements the incremental substring scan used to spot
// prompts in a terminal byte stream that arrives in arbitrary chunks.
package match

// Advance feeds buf into a partial match of reference that has already
// consumed state bytes and returns the new state. A state equal to
// len(reference) means the reference has been seen in full; once there,
// further input is ignored.
//
// On a mismatch the scan restarts from the beginning of the reference and
// re-tests the same byte, without the prefix table of KMP. That is good
// enough for short literal prompts, but a reference that overlaps itself
// (e.g. "aab" against "aaab") can be missed.
func Advance(reference, buf []byte, state int) int {
	for i := 0; i < len(buf) && state < len(reference); i++ {
		if reference[state] == buf[i] {
			state++
			continue
		}

		state = 0
		if reference[0] == buf[i] {
			state++
		}
	}

	return state
}

// Matcher tracks the progress of one reference across successive buffers.
type Matcher struct {
	reference []byte
	state     int
}

func New(reference string) *Matcher {
	return &Matcher{reference: []byte(reference)}
}

// Feed advances the matcher and reports whether the reference is now fully matched.
func (m *Matcher) Feed(buf []byte) bool {
	m.state = Advance(m.reference, buf, m.state)
	return m.Matched()
}

func (m *Matcher) Matched() bool {
	return m.state == len(m.reference)
}

func (m *Matcher) Reset() {
	m.state = 0
}

func (m *Matcher) State() int {
	return m.state
}

func (m *Matcher) Reference() string {
	return string(m.reference)
}
