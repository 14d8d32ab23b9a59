package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ruleCommand   = regexp.MustCompile(`^r(\d{1,2}) s(\d{1,3}) t(\d{1,2})$`)
	moveCommand   = regexp.MustCompile(`^\((\d),(\d)\)->\((\d),(\d)\)(?:\s+(\d{1,2}):(\d{2}))?$`)
	removeCommand = regexp.MustCompile(`^-\((\d),(\d)\)(?:\s+(\d{1,2}):(\d{2}))?$`)
	placeCommand  = regexp.MustCompile(`^\((\d),(\d)\)(?:\s+(\d{1,2}):(\d{2}))?$`)
	resignCommand = regexp.MustCompile(`^Player(\d) give up!$`)
)

// Command applies one line of the text protocol:
//
//	r<N> s<SSS> t<TT>             select rule N with step and minute limits
//	(f,r) MM:SS                   place
//	(f,r)->(f,r) MM:SS            move
//	-(f,r) MM:SS                  remove
//	Player<N> give up!            resign
//
// The clock suffix is optional; when present it sets the mover's elapsed time.
func (p *Position) Command(cmd string) error {
	cmd = strings.TrimSpace(cmd)

	if m := ruleCommand.FindStringSubmatch(cmd); m != nil {
		index, steps, minutes := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if index < 1 || index > len(p.catalog) {
			return fmt.Errorf("%w: no rule %d in %q", ErrBadCommand, index, cmd)
		}
		rule := p.catalog[index-1]
		rule.MaxStepsLedToDraw = steps
		rule.MaxTimeLedToLose = minutes
		return p.setPosition(rule, index)
	}

	if m := moveCommand.FindStringSubmatch(cmd); m != nil {
		from, err := FromPolar(atoi(m[1]), atoi(m[2]))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadCommand, err)
		}
		to, err := FromPolar(atoi(m[3]), atoi(m[4]))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadCommand, err)
		}
		return p.withTimePoint(m[5], m[6], func() error { return p.DoMove(MakeMove(from, to)) })
	}

	if m := removeCommand.FindStringSubmatch(cmd); m != nil {
		sq, err := FromPolar(atoi(m[1]), atoi(m[2]))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadCommand, err)
		}
		return p.withTimePoint(m[3], m[4], func() error { return p.Remove(sq) })
	}

	if m := placeCommand.FindStringSubmatch(cmd); m != nil {
		sq, err := FromPolar(atoi(m[1]), atoi(m[2]))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadCommand, err)
		}
		return p.withTimePoint(m[3], m[4], func() error { return p.Place(sq) })
	}

	if m := resignCommand.FindStringSubmatch(cmd); m != nil {
		return p.GiveUp(Color(atoi(m[1])))
	}

	return fmt.Errorf("%w: %q", ErrBadCommand, cmd)
}

func (p *Position) withTimePoint(minutes, seconds string, apply func() error) error {
	if minutes != "" {
		p.timePoint = atoi(minutes)*60 + atoi(seconds)
	}
	err := apply()
	p.timePoint = -1
	return err
}

// atoi is only called on regexp groups of digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
