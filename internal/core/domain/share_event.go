package domain

import "time"

// Social platforms a banner or message can be shared to.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformWhatsApp  = "whatsapp"
	PlatformTelegram  = "telegram"
	PlatformCopyLink  = "copy-link"
	PlatformMore      = "more"
)

// ShareEvent records one share attempt for analytics.
type ShareEvent struct {
	Platform    string    `json:"platform"`
	ContentType string    `json:"content_type"`
	Timestamp   time.Time `json:"timestamp"`
	Success     bool      `json:"success"`
	ErrorMsg    string    `json:"error_message,omitempty"`
}
