// file: internals/features/school/sessions/schedules/pattern/weekday.go
package pattern

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday memakai penomoran ISO: Monday=1 .. Sunday=7.
// Disimpan sebagai smallint, di JSON selalu nama hari ("monday").
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayOf mengubah time.Weekday (Sunday=0) ke ISO.
func WeekdayOf(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// ParseWeekday hanya menerima nama ("monday") atau singkatan 3 huruf ("mon").
// Angka sengaja ditolak supaya encoding tidak campur aduk.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("weekday: empty value")
	}
	for i := Monday; i <= Sunday; i++ {
		name := weekdayNames[i]
		if s == name || s == name[:3] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("weekday: unknown day %q", s)
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("weekday: cannot marshal %d", int(w))
	}
	return json.Marshal(w.String())
}

func (w *Weekday) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("weekday: expected day name string")
	}
	v, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Day memotong t ke tanggal kalender (00:00 UTC) supaya aritmetika hari
// tidak terganggu DST / zona.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date helper untuk test & seed.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
