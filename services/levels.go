// services/levels.go
package services

import "flavorquest-system/models"

// The level ladder as an ordered table of point floors. The last tier is
// terminal and unbounded. Keep this a table; thresholds get tuned.
type levelTier struct {
	Floor int
	Name  string
}

var levelTable = []levelTier{
	{0, "Food Newbie"},
	{100, "Flavor Explorer"},
	{300, "Culinary Adventurer"},
	{500, "FlavorQuest Master"},
}

// LevelInfo is the projection of a point total onto the ladder.
type LevelInfo struct {
	Name              string `json:"name"`
	TierIndex         int    `json:"tier_index"` // 0-based
	TierCount         int    `json:"tier_count"`
	PointsIntoTier    int    `json:"points_into_tier"`
	PointsForNextTier int    `json:"points_for_next_tier"` // 0 on the terminal tier
}

// LevelFor maps a cumulative point total to its tier. Monotonic in points.
func LevelFor(points int) LevelInfo {
	if points < 0 {
		points = 0
	}
	idx := 0
	for i, tier := range levelTable {
		if points >= tier.Floor {
			idx = i
		}
	}
	info := LevelInfo{
		Name:           levelTable[idx].Name,
		TierIndex:      idx,
		TierCount:      len(levelTable),
		PointsIntoTier: points - levelTable[idx].Floor,
	}
	if idx+1 < len(levelTable) {
		info.PointsForNextTier = levelTable[idx+1].Floor - levelTable[idx].Floor
	}
	return info
}

// StoneProgressInfo summarizes one stone against a completed set.
type StoneProgressInfo struct {
	StoneID        string `json:"stone_id"`
	CompletedCount int    `json:"completed_count"`
	Total          int    `json:"total"`
	IsStoneCleared bool   `json:"is_stone_cleared"`
}

// StoneProgress counts how many of the stone's challenges appear in the
// distinct completed set.
func StoneProgress(stone models.Stone, completed map[string]struct{}) StoneProgressInfo {
	done := 0
	for _, chID := range stone.ChallengeIDs {
		if _, ok := completed[chID]; ok {
			done++
		}
	}
	return StoneProgressInfo{
		StoneID:        stone.ID,
		CompletedCount: done,
		Total:          len(stone.ChallengeIDs),
		IsStoneCleared: done >= MinCompletedForUnlock,
	}
}

// GroupProgressInfo is the additive roll-up of StoneProgress over a group of
// stones (a path or a whole country).
type GroupProgressInfo struct {
	CompletedCount int `json:"completed_count"`
	Total          int `json:"total"`
	StonesCleared  int `json:"stones_cleared"`
	StoneCount     int `json:"stone_count"`
}

// GroupProgress sums StoneProgress across stones. Purely additive.
func GroupProgress(stones []models.Stone, completed map[string]struct{}) GroupProgressInfo {
	var g GroupProgressInfo
	for _, s := range stones {
		sp := StoneProgress(s, completed)
		g.CompletedCount += sp.CompletedCount
		g.Total += sp.Total
		if sp.IsStoneCleared {
			g.StonesCleared++
		}
		g.StoneCount++
	}
	return g
}
