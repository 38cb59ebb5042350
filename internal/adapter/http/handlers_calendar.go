package adapthttp

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"dashboard/internal/domain"
)

const icalProductID = "-//dashboard//events//EN"

// handleCalendar serves stored events plus the next monthiversary and
// birthday as an iCalendar feed.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	events, err := s.events.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	now := s.clock.Now().UTC()
	summary, err := s.age.Summary(now)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProductID)
	cal.Props.SetText("X-WR-CALNAME", s.age.Label())

	for _, e := range events {
		start, err := domain.ParseEventTime(e.Date)
		if err != nil {
			s.logger.Warn("skipping event with bad date", "id", e.ID, "date", e.Date)
			continue
		}
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, e.ID+"@dashboard")
		ev.Props.SetText(ical.PropSummary, e.Title)
		if e.Description != "" {
			ev.Props.SetText(ical.PropDescription, e.Description)
		}
		if len(e.Date) == len("2006-01-02") {
			ev.Props.SetDate(ical.PropDateTimeStart, start)
		} else {
			ev.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		}
		ev.Props.SetDateTime(ical.PropDateTimeStamp, now)
		cal.Children = append(cal.Children, ev.Component)
	}

	birth := s.age.BirthDate()
	monthly := summary.NextMonthiversary
	months := (monthly.Year-birth.Year)*12 + monthly.Month - birth.Month
	cal.Children = append(cal.Children,
		anniversaryEvent("monthiversary", monthly, fmt.Sprintf("%s turns %s", s.age.Label(), pluralMonths(months)), now).Component)

	annual := summary.NextBirthday
	cal.Children = append(cal.Children,
		anniversaryEvent("birthday", annual, fmt.Sprintf("%s turns %d", s.age.Label(), annual.Year-birth.Year), now).Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func anniversaryEvent(kind string, d domain.CalendarDate, summary string, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@dashboard", kind, d))
	ev.Props.SetText(ical.PropSummary, summary)
	ev.Props.SetDate(ical.PropDateTimeStart, d.Time())
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	return ev
}

func pluralMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
