package dialect

import "strings"

// SplitContext holds the parse-local state used to compute how much each
// token changes the statement nesting level. Obtain one per split from
// Dialect.NewSplitContext; it must not be shared between goroutines.
//
// Deltas, keyed by the upper-cased token text:
//
//	DECLARE  +1, enters a declare section
//	CREATE   +1, enters a create statement
//	BEGIN    +1 only inside CREATE and outside DECLARE, otherwise 0
//	END      -1
//	$$/$tag$ +1 on open, -1 on the matching close (DollarQuoting dialects)
//
// Everything else is 0.
type SplitContext struct {
	dialect *Dialect

	inDeclare bool
	inCreate  bool
	dollarTag string // open dollar-quote tag, "" when outside
}

// SplitLevel returns the nesting delta contributed by a token with the given
// text, updating the context flags as a side effect.
func (c *SplitContext) SplitLevel(text string) int {
	if c.dialect != nil && c.dialect.Features.DollarQuoting && isDollarTag(text) {
		switch {
		case c.dollarTag == "":
			c.dollarTag = text
			return 1
		case c.dollarTag == text:
			c.dollarTag = ""
			return -1
		default:
			// A different tag inside an open body is just text.
			return 0
		}
	}

	switch strings.ToUpper(text) {
	case "DECLARE":
		c.inDeclare = true
		return 1
	case "CREATE":
		c.inCreate = true
		return 1
	case "BEGIN":
		if c.inCreate && !c.inDeclare {
			return 1
		}
		return 0
	case "END":
		return -1
	}
	return 0
}

// Reset clears all flags. The splitter calls it at every statement boundary.
func (c *SplitContext) Reset() {
	c.inDeclare = false
	c.inCreate = false
	c.dollarTag = ""
}

// InCreate reports whether a CREATE has been seen since the last reset.
func (c *SplitContext) InCreate() bool { return c.inCreate }

// InDeclare reports whether a DECLARE has been seen since the last reset.
func (c *SplitContext) InDeclare() bool { return c.inDeclare }

// InDollarQuote reports whether a dollar-quoted body is open.
func (c *SplitContext) InDollarQuote() bool { return c.dollarTag != "" }

// isDollarTag matches $$ and $name$ where name is an identifier.
func isDollarTag(s string) bool {
	if len(s) < 2 || s[0] != '$' || s[len(s)-1] != '$' {
		return false
	}
	inner := s[1 : len(s)-1]
	for i, r := range inner {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
