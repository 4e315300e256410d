package share

import (
	"errors"
	"net/url"
	"strings"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
)

var (
	ErrUnknownPlatform = errors.New("unknown social platform")
	// ErrNoWebIntent marks platforms shared through native sheets or the
	// clipboard instead of a web URL.
	ErrNoWebIntent = errors.New("platform has no web share intent")
)

// Content is what gets shared: a banner link plus accompanying text.
type Content struct {
	Title   string   `json:"title"`
	Message string   `json:"message,omitempty"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// PlatformInfo describes one share target for UI listings.
type PlatformInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type platform struct {
	name     string
	icon     string
	color    string
	shareURL string
}

var platforms = map[string]platform{
	domain.PlatformFacebook: {
		name: "Facebook", icon: "facebook", color: "#1877f2",
		shareURL: "https://www.facebook.com/sharer/sharer.php?u={url}",
	},
	domain.PlatformInstagram: {
		// Instagram has no web share intent.
		name: "Instagram", icon: "instagram", color: "#e4405f",
	},
	domain.PlatformTwitter: {
		name: "Twitter/X", icon: "twitter", color: "#1da1f2",
		shareURL: "https://twitter.com/intent/tweet?text={text}&url={url}&hashtags={tags}",
	},
	domain.PlatformLinkedIn: {
		name: "LinkedIn", icon: "linkedin", color: "#0077b5",
		shareURL: "https://www.linkedin.com/sharing/share-offsite/?url={url}",
	},
	domain.PlatformWhatsApp: {
		name: "WhatsApp", icon: "whatsapp", color: "#25d366",
		shareURL: "https://wa.me/?text={text}%20{url}",
	},
	domain.PlatformTelegram: {
		name: "Telegram", icon: "send", color: "#0088cc",
		shareURL: "https://t.me/share/url?url={url}&text={text}",
	},
	domain.PlatformCopyLink: {
		name: "Copy Link", icon: "link", color: "#6c757d",
	},
	domain.PlatformMore: {
		name: "More", icon: "ellipsis-h", color: "#6c757d",
	},
}

// Listed order for UI surfaces; map iteration would shuffle it.
var platformOrder = []string{
	domain.PlatformFacebook,
	domain.PlatformInstagram,
	domain.PlatformTwitter,
	domain.PlatformLinkedIn,
	domain.PlatformWhatsApp,
	domain.PlatformTelegram,
	domain.PlatformCopyLink,
	domain.PlatformMore,
}

// Platforms lists every share target in display order.
func Platforms() []PlatformInfo {
	out := make([]PlatformInfo, 0, len(platformOrder))
	for _, id := range platformOrder {
		p := platforms[id]
		out = append(out, PlatformInfo{ID: id, Name: p.name, Icon: p.icon, Color: p.color})
	}
	return out
}

// BuildShareURL fills a platform's web intent with the content. Platforms
// without a web intent return ErrNoWebIntent so callers can fall back to
// native sharing or the clipboard.
func BuildShareURL(platformID string, content Content) (string, error) {
	p, ok := platforms[platformID]
	if !ok {
		return "", ErrUnknownPlatform
	}
	if p.shareURL == "" {
		return "", ErrNoWebIntent
	}

	text := content.Message
	if text == "" {
		text = content.Title
	}

	intent := p.shareURL
	intent = strings.ReplaceAll(intent, "{url}", url.QueryEscape(content.URL))
	intent = strings.ReplaceAll(intent, "{text}", url.QueryEscape(text))
	intent = strings.ReplaceAll(intent, "{tags}", url.QueryEscape(strings.Join(content.Tags, ",")))

	return intent, nil
}
