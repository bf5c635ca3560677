// Package clock formats the greeting, time and date shown in the dashboard
// header.
package clock

import "time"

// Greeting returns "Good Morning, name!" before noon, "Good Afternoon" until
// 17:00 and "Good Evening" after.
func Greeting(t time.Time, name string) string {
	var part string
	switch h := t.Hour(); {
	case h < 12:
		part = "Good Morning"
	case h < 17:
		part = "Good Afternoon"
	default:
		part = "Good Evening"
	}
	if name == "" {
		return part + "!"
	}
	return part + ", " + name + "!"
}

// Time renders a 12-hour clock such as "03:04:05 PM".
func Time(t time.Time, showSeconds bool) string {
	if showSeconds {
		return t.Format("03:04:05 PM")
	}
	return t.Format("03:04 PM")
}

// Date renders a long date such as "Monday, January 2, 2006".
func Date(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
