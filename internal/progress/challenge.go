package progress

// ChallengeProgress is the completed share of a challenge target, clamped to [0, 100].
func ChallengeProgress(target, progress int) int {
	if target <= 0 {
		return 0
	}
	progress = max(0, min(progress, target))
	return percent(float64(progress), float64(target))
}
