// file: internals/features/school/sessions/schedules/pattern/pattern.go
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"schoolops_backend/internals/helpers/dbtime"
)

// DefaultHorizonDays: 14 hari sudah cukup untuk pola mingguan apa pun.
const DefaultHorizonDays = 14

// maxScanDays membatasi scan kalau libur panjang menumpuk.
const maxScanDays = 366

var ErrScheduleSearchExhausted = errors.New("schedule search exhausted")

// Rule = satu baris jadwal mingguan (hari + jam).
type Rule struct {
	ID      uuid.UUID
	Weekday Weekday
	Start   dbtime.Tod
	End     dbtime.Tod
}

// DateRange = rentang libur (inklusif).
type DateRange struct {
	From            time.Time
	To              time.Time
	RecurringYearly bool
}

func (r DateRange) Includes(d time.Time) bool {
	d = Day(d)
	from, to := Day(r.From), Day(r.To)
	if !r.RecurringYearly {
		return !d.Before(from) && !d.After(to)
	}
	md := func(t time.Time) int { return int(t.Month())*100 + t.Day() }
	x, lo, hi := md(d), md(from), md(to)
	if lo <= hi {
		return x >= lo && x <= hi
	}
	// rentang melewati akhir tahun (mis. 30/12 - 02/01)
	return x >= lo || x <= hi
}

type Pattern struct {
	byDay    map[Weekday]Rule
	holidays []DateRange
	horizon  int
}

type Option func(*Pattern)

func WithHolidays(h []DateRange) Option {
	return func(p *Pattern) { p.holidays = append(p.holidays, h...) }
}

func WithHorizon(days int) Option {
	return func(p *Pattern) {
		if days > 0 {
			p.horizon = days
		}
	}
}

// New membangun pola dari rules. Kalau satu hari punya >1 rule, rule pertama menang.
func New(rules []Rule, opts ...Option) Pattern {
	p := Pattern{byDay: make(map[Weekday]Rule, len(rules)), horizon: DefaultHorizonDays}
	for _, r := range rules {
		if !r.Weekday.Valid() {
			continue
		}
		if _, dup := p.byDay[r.Weekday]; dup {
			continue
		}
		p.byDay[r.Weekday] = r
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func (p Pattern) Empty() bool { return len(p.byDay) == 0 }

func (p Pattern) Horizon() int { return p.horizon }

// Rules mengembalikan rule efektif, urut Senin..Minggu.
func (p Pattern) Rules() []Rule {
	out := make([]Rule, 0, len(p.byDay))
	for _, r := range p.byDay {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

func (p Pattern) RuleFor(w Weekday) (Rule, bool) {
	r, ok := p.byDay[w]
	return r, ok
}

func (p Pattern) IsHoliday(d time.Time) bool {
	for _, h := range p.holidays {
		if h.Includes(d) {
			return true
		}
	}
	return false
}

// Matches: hari d punya rule dan bukan hari libur.
func (p Pattern) Matches(d time.Time) (Rule, bool) {
	r, ok := p.byDay[WeekdayOf(d)]
	if !ok || p.IsHoliday(d) {
		return Rule{}, false
	}
	return r, true
}

// NextOccurrence mencari tanggal pertama SETELAH `after` yang cocok dengan pola.
// Hari libur dilewati dan tidak memakan jatah horizon.
func (p Pattern) NextOccurrence(after time.Time) (time.Time, Rule, error) {
	d := Day(after)
	budget := p.horizon
	for scanned := 0; scanned < maxScanDays && budget > 0; scanned++ {
		d = d.AddDate(0, 0, 1)
		if p.IsHoliday(d) {
			continue
		}
		budget--
		if r, ok := p.byDay[WeekdayOf(d)]; ok {
			return d, r, nil
		}
	}
	return time.Time{}, Rule{}, fmt.Errorf("%w: no class day within %d days after %s",
		ErrScheduleSearchExhausted, p.horizon, Day(after).Format("2006-01-02"))
}

// FirstOnOrAfter: d sendiri kalau cocok, selain itu NextOccurrence(d).
func (p Pattern) FirstOnOrAfter(d time.Time) (time.Time, Rule, error) {
	if r, ok := p.Matches(d); ok {
		return Day(d), r, nil
	}
	return p.NextOccurrence(d)
}
