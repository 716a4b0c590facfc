package changelog

// FirstHour is the synthetic hour given to the first release on a date.
// Later releases on the same date count down from here.
const FirstHour = 20

// PublishTimes hands out "{date}Thh:00" slots for one run.
//
// The source lists releases newest first, so the first release seen on a
// date gets the latest hour. Only FirstHour+1 releases fit on one date; the
// rest are rejected with ErrSlotsExhausted.
type PublishTimes struct {
	taken map[string]bool
}

// NewPublishTimes returns an empty slot registry.
func NewPublishTimes() *PublishTimes {
	return &PublishTimes{taken: make(map[string]bool)}
}

// Allocate reserves the next free hour for date (YYYY-MM-DD).
func (p *PublishTimes) Allocate(date string) (int, error) {
	hour := FirstHour
	for p.taken[FormatTimestamp(date, hour)] {
		hour--
	}
	if hour < 0 {
		return 0, ErrSlotsExhausted
	}
	p.taken[FormatTimestamp(date, hour)] = true
	return hour, nil
}

// Len returns the number of allocated slots.
func (p *PublishTimes) Len() int {
	return len(p.taken)
}
