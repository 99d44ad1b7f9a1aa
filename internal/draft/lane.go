package draft

import "strings"

// Lane is one of the five fixed role slots of a team.
type Lane string

const (
	LaneTop     Lane = "TOP"
	LaneJungle  Lane = "JGL"
	LaneMid     Lane = "MID"
	LaneADC     Lane = "ADC"
	LaneSupport Lane = "SUP"
)

// Lanes lists every lane in team order.
var Lanes = [LaneCount]Lane{LaneTop, LaneJungle, LaneMid, LaneADC, LaneSupport}

const LaneCount = 5

// ParseLane accepts the canonical short names plus JUNGLE and SUPPORT, in any case.
func ParseLane(s string) (Lane, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TOP":
		return LaneTop, true
	case "JGL", "JUNGLE":
		return LaneJungle, true
	case "MID":
		return LaneMid, true
	case "ADC":
		return LaneADC, true
	case "SUP", "SUPPORT":
		return LaneSupport, true
	default:
		return "", false
	}
}

func (l Lane) IsValid() bool {
	return l.index() >= 0
}

func (l Lane) String() string {
	return string(l)
}

func (l Lane) index() int {
	for i, lane := range Lanes {
		if lane == l {
			return i
		}
	}
	return -1
}

type PositionType string

const (
	PositionMain PositionType = "MAIN"
	PositionSub  PositionType = "SUB"
	PositionFill PositionType = "FILL"
)
