package format

// rawFormatter passes received bytes straight through: one verbatim
// unit per chunk, no buffering, no timestamps.
type rawFormatter struct{}

func (rawFormatter) Consume(chunk []byte) []Unit {
	if len(chunk) == 0 {
		return nil
	}
	return []Unit{{Text: string(chunk), Raw: true}}
}

func (rawFormatter) Flush() []Unit {
	return nil
}
