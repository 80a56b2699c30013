package federation

import (
	"fmt"
	"strconv"
	"strings"
)

// SetInput holds the points entered for one set position. A nil side means the
// field was left empty.
type SetInput struct {
	A *int
	B *int
}

func PlayedSet(a, b int) SetInput {
	return SetInput{A: &a, B: &b}
}

type SetScores struct {
	ScoreA int
	ScoreB int
	Sets   []string
	// TiedSets lists the 1-based positions whose points were equal. Such sets
	// are recorded but credited to neither side.
	TiedSets []int
}

// DeriveSetScores walks the first MaxSets positions in order, skipping any set
// where either side is missing.
func DeriveSetScores(inputs []SetInput) SetScores {
	res := SetScores{Sets: []string{}}
	for i, in := range inputs {
		if i >= MaxSets {
			break
		}
		if in.A == nil || in.B == nil {
			continue
		}
		a, b := *in.A, *in.B
		res.Sets = append(res.Sets, FormatSet(a, b))
		switch {
		case a > b:
			res.ScoreA++
		case b > a:
			res.ScoreB++
		default:
			res.TiedSets = append(res.TiedSets, i+1)
		}
	}
	return res
}

func FormatSet(a, b int) string {
	return fmt.Sprintf("%d-%d", a, b)
}

func ParseSet(s string) (a, b int, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("set score %q is not of the form A-B", s)
	}
	if a, err = strconv.Atoi(strings.TrimSpace(left)); err != nil {
		return 0, 0, fmt.Errorf("set score %q: %w", s, err)
	}
	if b, err = strconv.Atoi(strings.TrimSpace(right)); err != nil {
		return 0, 0, fmt.Errorf("set score %q: %w", s, err)
	}
	return a, b, nil
}

// CountWonSets counts the entries where one side has more points. Entries that
// do not parse are ignored.
func CountWonSets(sets []string) (a, b int) {
	for _, s := range sets {
		pa, pb, err := ParseSet(s)
		if err != nil {
			continue
		}
		switch {
		case pa > pb:
			a++
		case pb > pa:
			b++
		}
	}
	return a, b
}
