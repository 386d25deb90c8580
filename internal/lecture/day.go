package lecture

import "strings"

// Day is a weekday label as used in catalog schedule strings.
type Day string

const (
	Monday    Day = "월"
	Tuesday   Day = "화"
	Wednesday Day = "수"
	Thursday  Day = "목"
	Friday    Day = "금"
	Saturday  Day = "토"
)

// Days lists the grid columns in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayCount is the number of grid columns.
const DayCount = 6

var englishDays = map[string]Day{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
}

// Index returns the column index of the day, or -1 if it is not a grid day.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid returns true if the day is one of the grid days.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// English returns the three-letter English abbreviation.
func (d Day) English() string {
	for name, day := range englishDays {
		if day == d && len(name) == 3 {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return string(d)
}

// DayAt returns the day at the given column index.
func DayAt(i int) (Day, bool) {
	if i < 0 || i >= len(Days) {
		return "", false
	}
	return Days[i], true
}

// ParseDay accepts a Korean label or an English day name/abbreviation.
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	if d := Day(s); d.Valid() {
		return d, true
	}
	d, ok := englishDays[strings.ToLower(s)]
	return d, ok
}
