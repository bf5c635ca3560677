package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 4, hour, min, 9, 0, time.UTC)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good Morning, Ana!"},
		{11, "Good Morning, Ana!"},
		{12, "Good Afternoon, Ana!"},
		{16, "Good Afternoon, Ana!"},
		{17, "Good Evening, Ana!"},
		{23, "Good Evening, Ana!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(at(tt.hour, 0), "Ana"), "hour %d", tt.hour)
	}
	assert.Equal(t, "Good Morning!", Greeting(at(8, 0), ""))
}

func TestTime(t *testing.T) {
	assert.Equal(t, "03:07:09 PM", Time(at(15, 7), true))
	assert.Equal(t, "03:07 PM", Time(at(15, 7), false))
	assert.Equal(t, "12:00:09 AM", Time(at(0, 0), true))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Monday, March 4, 2024", Date(at(9, 0)))
}
