package datetime

// FakeSource returns a scripted date-time.
type FakeSource struct {
	// Text is returned by DateTime when Available is true.
	Text      string
	Available bool
}

// DateTime returns the scripted value.
func (f *FakeSource) DateTime() (string, bool) {
	if !f.Available {
		return "", false
	}
	return f.Text, true
}
