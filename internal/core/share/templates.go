// Package share builds the text side of the share flow: banner template
// catalogue, per-platform share URLs and templated share messages. It
// performs no network or platform calls; opening a URL or rendering a
// template is the caller's concern.
package share

// BannerTemplate describes one visual style a banner can be rendered with.
type BannerTemplate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Colors       []string `json:"colors"`
	AccentColors []string `json:"accent_colors"`
	OverlayColor string   `json:"overlay_color"`
	Style        string   `json:"style"`
}

var bannerTemplates = []BannerTemplate{
	{
		ID:           "midnight",
		Name:         "Midnight",
		Colors:       []string{"#050505", "#0f0f1a"},
		AccentColors: []string{"#a855f7", "#c084fc", "#ffffff"},
		OverlayColor: "rgba(168, 85, 247, 0.08)",
		Style:        "midnight",
	},
	{
		ID:           "obsidian",
		Name:         "Obsidian",
		Colors:       []string{"#0a0f1a", "#152238", "#1e3a5f"},
		AccentColors: []string{"#22d3ee", "#67e8f9", "#ffffff"},
		OverlayColor: "rgba(34, 211, 238, 0.1)",
		Style:        "obsidian",
	},
	{
		ID:           "carbon",
		Name:         "Carbon",
		Colors:       []string{"#0f1419", "#1a1f2e", "#252d3a"},
		AccentColors: []string{"#10b981", "#34d399", "#ffffff"},
		OverlayColor: "rgba(16, 185, 129, 0.08)",
		Style:        "carbon",
	},
}

// BannerTemplates returns the catalogue as a copy callers may reorder.
func BannerTemplates() []BannerTemplate {
	out := make([]BannerTemplate, len(bannerTemplates))
	copy(out, bannerTemplates)
	return out
}

// TemplateByID looks a banner template up, reporting whether it exists.
func TemplateByID(id string) (BannerTemplate, bool) {
	for _, tpl := range bannerTemplates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return BannerTemplate{}, false
}
