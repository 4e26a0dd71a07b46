package engine

import "go.uber.org/zap"

// LogMessenger records outbound fills instead of delivering them. It stands
// in for the bridge collaborator in local runs and tests.
type LogMessenger struct {
	Logger *zap.Logger
}

func (m LogMessenger) SendFill(payload []byte) error {
	m.Logger.Info("outbound fill", zap.Int("payload_bytes", len(payload)))
	return nil
}
