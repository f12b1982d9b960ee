package domain

// NavigationEntry is one link of the side navigation.
type NavigationEntry struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	BadgeCount *int   `json:"badge_count,omitempty"`
	Section    string `json:"section"`
	Active     bool   `json:"active"`
}

// NavigationSection groups entries under a heading.
type NavigationSection struct {
	Title   string            `json:"title"`
	Entries []NavigationEntry `json:"entries"`
}

// NavigationAction is a navigation-adjacent control that is not a link, such as logout.
type NavigationAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Method string `json:"method"`
	Href   string `json:"href"`
}
