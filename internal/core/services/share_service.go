package services

import (
	"time"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/share"
)

// ShareService is the application face of the share flow: template and
// platform catalogues, message composition, web-intent URLs and the
// analytics trail.
type ShareService struct {
	recorder *analytics.Recorder
}

func NewShareService(recorder *analytics.Recorder) *ShareService {
	return &ShareService{
		recorder: recorder,
	}
}

func (s *ShareService) Templates() []share.BannerTemplate {
	return share.BannerTemplates()
}

func (s *ShareService) Platforms() []share.PlatformInfo {
	return share.Platforms()
}

type ComposeMessageInput struct {
	Kind string
	// Variant selects a fixed template from the kind's set; nil draws one
	// at random.
	Variant *int
	Vars    map[string]string
}

func (s *ShareService) ComposeMessage(input ComposeMessageInput) (string, error) {
	if input.Variant != nil {
		return share.ComposeMessageAt(input.Kind, *input.Variant, input.Vars)
	}
	return share.ComposeMessage(input.Kind, input.Vars)
}

func (s *ShareService) BuildShareURL(platform string, content share.Content) (string, error) {
	return share.BuildShareURL(platform, content)
}

// RecordEvent adds one share attempt to the analytics trail.
func (s *ShareService) RecordEvent(platform, contentType string, success bool, errMsg string) {
	s.recorder.Record(domain.ShareEvent{
		Platform:    platform,
		ContentType: contentType,
		Timestamp:   time.Now().UTC(),
		Success:     success,
		ErrorMsg:    errMsg,
	})
}

func (s *ShareService) Summary() analytics.Summary {
	return s.recorder.Summary()
}
