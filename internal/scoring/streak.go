package scoring

// NextStreak advances a win/loss streak. Positive values count consecutive
// wins, negative values consecutive losses.
func NextStreak(streak int, won bool) int {
	switch {
	case won && streak < 0:
		return 1
	case won:
		return streak + 1
	case streak > 0:
		return -1
	default:
		return streak - 1
	}
}

// TieredStreakBonus rewards runs of two or more with a stepped bonus.
func TieredStreakBonus(streak int, won bool) int {
	next := NextStreak(streak, won)
	switch {
	case next >= 6:
		return 5
	case next >= 4:
		return 3
	case next >= 2:
		return 2
	case next <= -6:
		return -5
	case next <= -4:
		return -3
	case next <= -2:
		return -2
	default:
		return 0
	}
}

// RawStreakBonus is the streak itself once it reaches two in either direction.
func RawStreakBonus(streak int, won bool) int {
	next := NextStreak(streak, won)
	if next >= 2 || next <= -2 {
		return next
	}
	return 0
}
