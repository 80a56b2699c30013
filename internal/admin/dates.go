package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is how every managed record stores its date.
const DateLayout = "2006-01-02"

var ErrUnrecognisedDate = errors.New("tanggal tidak dikenali")

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDate accepts an ISO date or an English phrase such as "next friday" or
// "in 3 days". An empty input means today.
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Format(DateLayout), nil
	}
	if t, err := time.Parse(DateLayout, input); err == nil {
		return t.Format(DateLayout), nil
	}

	r, err := dateParser.Parse(strings.ToLower(input), now)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnrecognisedDate, input, err)
	}
	if r == nil {
		return "", fmt.Errorf("%w: %q", ErrUnrecognisedDate, input)
	}
	return r.Time.Format(DateLayout), nil
}
