// ids/ids.go
package ids

import (
	"fmt"
	"regexp"
	"strconv"
)

// The catalog's canonical id grammar: stone001, stone001-challenge002.
// Older content generations used stone1-challenge2, stone001_challenge002
// and bare challenge2; CanonicalizeChallengeID accepts all of them.
var (
	stoneIDPattern     = regexp.MustCompile(`^stone\d{3}$`)
	challengeIDPattern = regexp.MustCompile(`^stone\d{3}-challenge\d{3}$`)

	looseChallengeID = regexp.MustCompile(`stone(\d+)[-_]challenge(\d+)`)
	bareChallengeID  = regexp.MustCompile(`challenge(\d+)`)
)

// StoneID builds the canonical stone id for a 1-based order.
func StoneID(order int) string {
	return fmt.Sprintf("stone%03d", order)
}

// ChallengeID builds the canonical challenge id for a stone/challenge order pair.
func ChallengeID(stoneOrder, challengeOrder int) string {
	return fmt.Sprintf("%s-challenge%03d", StoneID(stoneOrder), challengeOrder)
}

// CanonicalizeChallengeID normalizes raw to the stone{3d}-challenge{3d} grammar.
// A stoneOrderHint of 0 means no hint. If raw carries a recognizable
// stone+challenge pattern (any digit width, - or _ separator) the digits are
// reformatted to 3-width. A bare challengeN is only resolvable with a hint.
// Anything else is returned unchanged; callers validate with IsChallengeID.
func CanonicalizeChallengeID(raw string, stoneOrderHint int) string {
	if m := looseChallengeID.FindStringSubmatch(raw); m != nil {
		stoneN, _ := strconv.Atoi(m[1])
		chalN, _ := strconv.Atoi(m[2])
		return ChallengeID(stoneN, chalN)
	}
	if m := bareChallengeID.FindStringSubmatch(raw); m != nil && stoneOrderHint > 0 {
		chalN, _ := strconv.Atoi(m[1])
		return ChallengeID(stoneOrderHint, chalN)
	}
	return raw
}

// IsStoneID reports whether id matches the strict stone id grammar.
func IsStoneID(id string) bool {
	return stoneIDPattern.MatchString(id)
}

// IsChallengeID reports whether id matches the strict challenge id grammar.
func IsChallengeID(id string) bool {
	return challengeIDPattern.MatchString(id)
}

// StoneIDFromChallengeID extracts the owning stone id from a canonical
// challenge id. Returns false for anything not in canonical form.
func StoneIDFromChallengeID(id string) (string, bool) {
	if !IsChallengeID(id) {
		return "", false
	}
	return id[:len("stone000")], true
}
