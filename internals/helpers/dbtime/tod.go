// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod = time of day (HH:mm:ss), tanpa tanggal & zona.
type Tod struct{ time.Time }

// From: bikin Tod dari time.Time (ambil HH:mm:ss, buang tanggal & zona)
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse: bikin Tod dari string "HH:mm[:ss]"
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MustParse dipakai untuk konstanta & test.
func MustParse(s string) Tod {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Scan: terima time.Time atau string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: invalid time %q (want HH:mm or HH:mm:ss)", s)
	}
	*t = From(tt)
	return nil
}

// Value: kirim "HH:MM:SS" agar Postgres TIME paham
func (t Tod) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t Tod) String() string {
	if t.Time.IsZero() {
		return "00:00:00"
	}
	return t.Format("15:04:05")
}

// Seconds sejak 00:00, dipakai untuk perbandingan.
func (t Tod) Seconds() int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (t Tod) Equal(o Tod) bool   { return t.Seconds() == o.Seconds() }
func (t Tod) Before(o Tod) bool  { return t.Seconds() < o.Seconds() }
func (Tod) GormDataType() string { return "time" }

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
