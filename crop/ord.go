package crop

import "fmt"

// Ord identifies the part of the selection a gesture grabbed: one of the
// eight compass handles, or OrdMove for the selection body.
type Ord uint8

const (
	OrdMove Ord = iota
	OrdN
	OrdNE
	OrdE
	OrdSE
	OrdS
	OrdSW
	OrdW
	OrdNW
)

var ordNames = [...]string{
	OrdMove: "",
	OrdN:    "n",
	OrdNE:   "ne",
	OrdE:    "e",
	OrdSE:   "se",
	OrdS:    "s",
	OrdSW:   "sw",
	OrdW:    "w",
	OrdNW:   "nw",
}

// Ords lists the eight handles clockwise from north.
func Ords() []Ord {
	return []Ord{OrdN, OrdNE, OrdE, OrdSE, OrdS, OrdSW, OrdW, OrdNW}
}

// ParseOrd parses a handle tag. The empty string and "move" are the selection
// body.
func ParseOrd(s string) (Ord, error) {
	if s == "move" {
		return OrdMove, nil
	}
	for o, name := range ordNames {
		if name == s {
			return Ord(o), nil
		}
	}
	return OrdMove, fmt.Errorf("unknown ord %q", s)
}

func (o Ord) String() string {
	switch {
	case o == OrdMove:
		return "move"
	case int(o) < len(ordNames):
		return ordNames[o]
	}
	return fmt.Sprintf("Ord(%d)", uint8(o))
}

func (o Ord) MarshalText() ([]byte, error) {
	if int(o) >= len(ordNames) {
		return nil, fmt.Errorf("invalid ord %d", uint8(o))
	}
	return []byte(ordNames[o]), nil
}

func (o *Ord) UnmarshalText(text []byte) error {
	parsed, err := ParseOrd(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Inverse mirrors the handle through the selection centre. OrdMove maps to
// itself.
func (o Ord) Inverse() Ord {
	switch o {
	case OrdN:
		return OrdS
	case OrdNE:
		return OrdSW
	case OrdE:
		return OrdW
	case OrdSE:
		return OrdNW
	case OrdS:
		return OrdN
	case OrdSW:
		return OrdNE
	case OrdW:
		return OrdE
	case OrdNW:
		return OrdSE
	}
	return o
}

// Horizontal reports whether the handle only moves the x axis.
func (o Ord) Horizontal() bool { return o == OrdE || o == OrdW }

// Vertical reports whether the handle only moves the y axis.
func (o Ord) Vertical() bool { return o == OrdN || o == OrdS }

// Diagonal reports whether the handle is a corner.
func (o Ord) Diagonal() bool {
	return o == OrdNE || o == OrdSE || o == OrdSW || o == OrdNW
}

// xInversed reports whether the handle sits on the left edge, so that
// growing the selection means moving against the x axis.
func (o Ord) xInversed() bool { return o == OrdNW || o == OrdW || o == OrdSW }

// yInversed is xInversed for the top edge.
func (o Ord) yInversed() bool { return o == OrdNW || o == OrdN || o == OrdNE }
