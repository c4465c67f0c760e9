package frost

// group tracks which participants in a DKG, refresh, threshold-change, or
// repair round are still operating, versus inactive (never responded) or
// disqualified (responded but failed a verification check). It does not
// decide how a disqualification is handled — this package has no
// malicious-abort identification beyond the check-and-reject model — it
// only keeps the bookkeeping a caller needs to know who to exclude from the
// rest of the round.
type group struct {
	size uint16

	inactive     []ParticipantIndex
	disqualified []ParticipantIndex
}

func newGroup(size uint16) *group {
	return &group{size: size}
}

// markInactive adds index to the inactive set, unless it is already
// inactive, disqualified, or out of range.
func (g *group) markInactive(index ParticipantIndex) {
	if g.isOperating(index) {
		g.inactive = append(g.inactive, index)
	}
}

// markDisqualified adds index to the disqualified set, unless it is already
// inactive, disqualified, or out of range.
func (g *group) markDisqualified(index ParticipantIndex) {
	if g.isOperating(index) {
		g.disqualified = append(g.disqualified, index)
	}
}

func (g *group) isOperating(index ParticipantIndex) bool {
	return g.isInGroup(index) && !g.isInactive(index) && !g.isDisqualified(index)
}

func (g *group) isInGroup(index ParticipantIndex) bool {
	return index > 0 && uint16(index) <= g.size
}

func (g *group) isInactive(index ParticipantIndex) bool {
	for _, i := range g.inactive {
		if i == index {
			return true
		}
	}
	return false
}

func (g *group) isDisqualified(index ParticipantIndex) bool {
	for _, i := range g.disqualified {
		if i == index {
			return true
		}
	}
	return false
}

// findMissing returns, given the senders that actually responded in a
// round, the indexes of participants who did not — regardless of whether
// they had already been marked inactive in an earlier round.
func findMissing(groupSize uint16, responded []ParticipantIndex) []ParticipantIndex {
	seen := make(map[ParticipantIndex]bool, len(responded))
	for _, idx := range responded {
		seen[idx] = true
	}

	missing := make([]ParticipantIndex, 0)
	for i := uint16(1); i <= groupSize; i++ {
		if !seen[ParticipantIndex(i)] {
			missing = append(missing, ParticipantIndex(i))
		}
	}
	return missing
}

// deduplicateByIndex keeps only the first occurrence for each participant
// index in list, using getIndex to extract it.
func deduplicateByIndex[T any](list []T, getIndex func(T) ParticipantIndex) []T {
	seen := make(map[ParticipantIndex]bool, len(list))
	result := make([]T, 0, len(list))
	for _, item := range list {
		idx := getIndex(item)
		if !seen[idx] {
			seen[idx] = true
			result = append(result, item)
		}
	}
	return result
}
