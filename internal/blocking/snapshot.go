package blocking

import (
	"maps"
	"slices"
	"strings"
)

// Snapshot is a point-in-time copy of the block list.
type Snapshot struct {
	channelIDs map[string]struct{}
	keywords   []string
}

// NewSnapshot builds a snapshot. Blank entries are ignored.
func NewSnapshot(channelIDs, keywords []string) Snapshot {
	s := Snapshot{
		channelIDs: make(map[string]struct{}, len(channelIDs)),
		keywords:   make([]string, 0, len(keywords)),
	}
	for _, id := range channelIDs {
		if id = strings.TrimSpace(id); id != "" {
			s.channelIDs[id] = struct{}{}
		}
	}
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			s.keywords = append(s.keywords, kw)
		}
	}
	return s
}

// Empty reports whether nothing is blocked.
func (s Snapshot) Empty() bool {
	return len(s.channelIDs) == 0 && len(s.keywords) == 0
}

// ChannelIDs returns the blocked channel IDs, sorted. The slice is a copy.
func (s Snapshot) ChannelIDs() []string {
	return slices.Sorted(maps.Keys(s.channelIDs))
}

// Keywords returns the lowercased blocked keywords. The slice is a copy.
func (s Snapshot) Keywords() []string {
	return slices.Clone(s.keywords)
}

// ChannelBlocked reports whether the channel is blocked. Blank IDs never are.
func (s Snapshot) ChannelBlocked(channelID string) bool {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return false
	}
	_, ok := s.channelIDs[channelID]
	return ok
}

// KeywordBlocked reports whether text contains a blocked keyword, ignoring case.
func (s Snapshot) KeywordBlocked(text string) bool {
	if text == "" || len(s.keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
