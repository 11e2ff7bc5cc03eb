package view

import "strings"

type Badge int

const (
	Neutral Badge = iota
	Open
	Closed
	Lost
)

// Placeholder is shown in place of an empty status.
const Placeholder = "-"

var badgeNames = [...]string{"neutral", "open", "closed", "lost"}

func (b Badge) String() string {
	if b < Neutral || b > Lost {
		return badgeNames[Neutral]
	}
	return badgeNames[b]
}

type badgeRule struct {
	badge   Badge
	needles []string
}

// evaluated in order, first hit wins
var badgeRules = []badgeRule{
	{badge: Open, needles: []string{"open", "follow"}},
	{badge: Closed, needles: []string{"close", "done"}},
	{badge: Lost, needles: []string{"lost", "drop"}},
}

// Classify maps free-form status text onto exactly one badge.
func Classify(status string) Badge {
	s := strings.ToLower(status)
	if s == "" {
		return Neutral
	}

	for _, rule := range badgeRules {
		for _, n := range rule.needles {
			if strings.Contains(s, n) {
				return rule.badge
			}
		}
	}

	return Neutral
}

// StatusText is the status as displayed, with a placeholder for blanks.
func StatusText(status string) string {
	if status == "" {
		return Placeholder
	}
	return status
}
