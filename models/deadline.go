// ABOUTME: Deadline text parsing and overdue detection
// ABOUTME: Deadlines are free text; only recognized date forms can be overdue
package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dottedDateRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4})$`)
)

// DeadlineISO normalizes a deadline string to ISO form (YYYY-MM-DD).
// Accepts ISO dates and German dotted dates (DD.MM.YYYY, DD.MM.YY with the
// two-digit year read as 20YY). Anything else, like calendar-week notation
// ("KW 5"), yields the empty string.
func DeadlineISO(deadline string) string {
	if deadline == "" {
		return ""
	}
	if isoDateRe.MatchString(deadline) {
		return deadline
	}
	m := dottedDateRe.FindStringSubmatch(deadline)
	if m == nil {
		return ""
	}
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// Overdue reports whether a point's deadline lies before today. Done points
// and points with unrecognizable deadlines are never overdue. Comparison is
// on the ISO string form, date precision only.
func (p *Point) Overdue(today time.Time) bool {
	if p.Done {
		return false
	}
	iso := DeadlineISO(p.Deadline)
	return iso != "" && iso < today.Format("2006-01-02")
}
