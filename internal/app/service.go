package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"horoscopefetcher/internal/coordinator"
	"horoscopefetcher/internal/zodiac"
)

// PlaceholderAPIKey is the value shipped in sample configuration.
// It is treated the same as a missing key.
const PlaceholderAPIKey = "YOUR_DEFAULT_RAPIDAPI_KEY"

// ErrUnknownSign is returned for names outside the twelve zodiac signs.
var ErrUnknownSign = errors.New("unknown zodiac sign")

// Sequencer runs one fetch cycle.
type Sequencer interface {
	Run(ctx context.Context, sign, apiKey string, observer coordinator.Observer) coordinator.Outcome
}

// Service answers reading requests for a sign.
type Service struct {
	sequencer Sequencer
}

func NewService(seq Sequencer) *Service {
	return &Service{sequencer: seq}
}

// Reading validates the sign and credential and runs a fetch cycle.
// Without a usable key no request is made and a NotConfigured outcome is
// returned. The only error is ErrUnknownSign.
func (s *Service) Reading(ctx context.Context, signName, apiKey string, observer coordinator.Observer) (coordinator.Outcome, error) {
	sign, ok := zodiac.Lookup(signName)
	if !ok {
		return coordinator.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownSign, signName)
	}

	if !IsUsableAPIKey(apiKey) {
		slog.Error("API key is missing or is the default placeholder", "sign", sign.ID())
		out := coordinator.NotConfigured(sign.ID())
		if observer != nil {
			observer(coordinator.Event{Kind: coordinator.CycleFinished, Outcome: out})
		}
		return out, nil
	}

	return s.sequencer.Run(ctx, sign.ID(), strings.TrimSpace(apiKey), observer), nil
}

// IsUsableAPIKey reports whether key is non-blank and not the placeholder.
func IsUsableAPIKey(key string) bool {
	trimmed := strings.TrimSpace(key)
	return trimmed != "" && trimmed != PlaceholderAPIKey
}

// ResolveAPIKey picks the credential for a cycle: an explicitly supplied
// key wins over the stored one, which wins over the configured default.
func ResolveAPIKey(explicit, stored, configured string) string {
	for _, k := range []string{explicit, stored, configured} {
		if strings.TrimSpace(k) != "" {
			return strings.TrimSpace(k)
		}
	}
	return ""
}
