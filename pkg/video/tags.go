package video

import "strings"

// tagPatterns maps lowercase substrings to canonical tags. Korean and
// English forms of the same concept collapse to one English tag so
// filtering stays consistent across channels.
var tagPatterns = []struct {
	substr string
	tag    string
}{
	{"great league", "Great League"},
	{"ultra league", "Ultra League"},
	{"master league", "Master League"},
	{"go battle league", "GO Battle League"},
	{"gbl", "GO Battle League"},
	{"pvp", "PvP"},
	{"raid", "Raid"},
	{"shadow", "Shadow"},
	{"mega", "Mega"},
	{"tournament", "Tournament"},
	{"guide", "Guide"},
	{"tutorial", "Guide"},
	{"team", "Team"},
	{"배틀", "Battle"},
	{"대전", "Battle"},
	{"가이드", "Guide"},
	{"공략", "Guide"},
	{"리그", "League"},
	{"레이드", "Raid"},
}

// ExtractTags derives tags from a video title and description against a
// fixed vocabulary. Matching is case-insensitive over both fields and
// each tag appears at most once.
func ExtractTags(title, description string) []string {
	lower := strings.ToLower(title + " " + description)

	var tags []string
	seen := make(map[string]struct{})
	for _, p := range tagPatterns {
		if !strings.Contains(lower, p.substr) {
			continue
		}
		if _, ok := seen[p.tag]; ok {
			continue
		}
		seen[p.tag] = struct{}{}
		tags = append(tags, p.tag)
	}
	return tags
}
