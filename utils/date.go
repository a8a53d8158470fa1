package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const DateLayout = "2006-01-02"

// Date stores a calendar day and travels as "YYYY-MM-DD" in JSON and SQL.
type Date struct {
	time.Time
}

// ParseDate accepts anything jinzhu/now understands plus a few picker
// layouts, and drops the time of day.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{DateLayout, time.RFC3339, time.RFC3339Nano, "01/02/2006", "2006/01/02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{truncateDay(t)}, nil
		}
	}
	t, err := now.Parse(raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return Date{truncateDay(t)}, nil
}

// NormalizeDate rewrites raw as YYYY-MM-DD; unparseable input comes back unchanged.
func NormalizeDate(raw string) string {
	d, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return d.String()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == `null` || str == `""` {
		*d = Date{}
		return nil
	}
	str = strings.Trim(str, `"`)
	t, err := time.Parse(DateLayout, str)
	if err != nil {
		return fmt.Errorf("invalid date format: %s", str)
	}
	*d = Date{t}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time.Format(DateLayout), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{v}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("unsupported scan type for Date: %T", value)
	}
}

func (d *Date) scanString(s string) error {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("cannot parse date: %w", err)
	}
	*d = Date{t}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
