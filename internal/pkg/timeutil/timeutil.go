package timeutil

import "time"

const DateLayout = "2006-01-02"

func NowUnix() int64 {
	return time.Now().Unix()
}

func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeeksAgo returns the date n weeks before today, UTC.
func WeeksAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -7*n).Format(DateLayout)
}
