package announcement

import "time"

// SetNow freezes the clock used for announcement dates until the returned func is called.
func SetNow(t time.Time) (restore func()) {
	nowFunc = func() time.Time { return t }
	return func() { nowFunc = time.Now }
}
