package templates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Result is one scenario row of the dynamic benchmark report.
type Result struct {
	Name       string
	Title      string
	Width      int
	Layers     int
	Sources    int
	Read       float64
	Static     float64
	Iterations int

	Duration    time.Duration
	Sum         int
	Recomputes  uint64
	Fingerprint uint64
}

// UpdateRate is recomputes per millisecond of the fastest run.
func (r Result) UpdateRate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Recomputes) / (float64(r.Duration) / float64(time.Millisecond))
}

func percent(f float64) string {
	return strconv.FormatFloat(100*f, 'f', -1, 64) + "%"
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func commaU(n uint64) string {
	return humanize.Comma(int64(n))
}

func rate(r Result) string {
	return humanize.CommafWithDigits(r.UpdateRate(), 0)
}

func hex(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// markdown cell text must not break the row.
func cell(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '|':
			sb.WriteString(`\|`)
		case '\n':
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
