package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Meridiem distinguishes the two halves of a 12-hour clock.
type Meridiem string

const (
	MeridiemAM Meridiem = "am"
	MeridiemPM Meridiem = "pm"
)

// RecurringSlot is a weekly-recurring posting time: a 12-hour clock time
// plus a flag for each weekday it applies to.
type RecurringSlot struct {
	ID       string
	Hour     int // 1-12
	Minute   int // 0-59
	Meridiem Meridiem
	Days     [7]bool // indexed by time.Weekday (Sunday = 0)
	CreatedAt time.Time
}

// NewSlot creates a recurring slot with validation.
func NewSlot(hour, minute int, meridiem Meridiem, days []time.Weekday) (*RecurringSlot, error) {
	s := &RecurringSlot{
		ID:        uuid.NewString(),
		Hour:      hour,
		Minute:    minute,
		Meridiem:  meridiem,
		CreatedAt: time.Now(),
	}
	for _, d := range days {
		if d >= 0 && d <= time.Saturday {
			s.Days[d] = true
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the slot's clock fields and day flags.
func (s *RecurringSlot) Validate() error {
	if s.Hour < 1 || s.Hour > 12 {
		return ErrInvalidHour
	}
	if s.Minute < 0 || s.Minute > 59 {
		return ErrInvalidMinute
	}
	if s.Meridiem != MeridiemAM && s.Meridiem != MeridiemPM {
		return ErrInvalidMeridiem
	}
	active := false
	for _, d := range s.Days {
		if d {
			active = true
			break
		}
	}
	if !active {
		return ErrNoActiveDays
	}
	return nil
}

// MinuteOfDay converts the 12-hour clock time to minutes since midnight.
// 12am maps to 0, 12pm to 720.
func (s *RecurringSlot) MinuteOfDay() int {
	h := s.Hour % 12
	if s.Meridiem == MeridiemPM {
		h += 12
	}
	return h*60 + s.Minute
}

// ActiveOn returns true if the slot applies to the given weekday.
func (s *RecurringSlot) ActiveOn(w time.Weekday) bool {
	return s.Days[w]
}

// SameTime returns true if two slots share the same clock time.
// Used to reject duplicate slots at creation.
func (s *RecurringSlot) SameTime(other *RecurringSlot) bool {
	if other == nil {
		return false
	}
	return s.Hour == other.Hour && s.Minute == other.Minute && s.Meridiem == other.Meridiem
}

// Clock returns the slot time as a display string, e.g. "9:05am".
func (s *RecurringSlot) Clock() string {
	return fmt.Sprintf("%d:%02d%s", s.Hour, s.Minute, s.Meridiem)
}

// DayList returns the active weekdays in Sunday-first order.
func (s *RecurringSlot) DayList() []time.Weekday {
	var days []time.Weekday
	for w := time.Sunday; w <= time.Saturday; w++ {
		if s.Days[w] {
			days = append(days, w)
		}
	}
	return days
}

// ParseMeridiem parses "am" or "pm", case-insensitive.
func ParseMeridiem(v string) (Meridiem, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "am":
		return MeridiemAM, nil
	case "pm":
		return MeridiemPM, nil
	default:
		return "", ErrInvalidMeridiem
	}
}

// ParseWeekdays parses a comma-separated weekday list, e.g. "mon,wed,fri".
// Full names are accepted too. Input is case-insensitive.
func ParseWeekdays(v string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		w, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, w)
	}
	if len(days) == 0 {
		return nil, ErrNoActiveDays
	}
	return days, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}
