package auth

import "go.uber.org/zap"

// Observer receives validation outcomes. Implementations must not block.
type Observer interface {
	TokenValidated(p *Principal)
	AuthenticationFailed(err error)
}

type nopObserver struct{}

func (nopObserver) TokenValidated(*Principal)   {}
func (nopObserver) AuthenticationFailed(error) {}

// LogObserver records validation outcomes as structured log entries.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer backed by zap.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// TokenValidated logs a successful validation.
func (o *LogObserver) TokenValidated(p *Principal) {
	o.logger.Debug("token validated",
		zap.String("sub", p.Subject),
		zap.Strings("claims", p.ClaimKeys()))
}

// AuthenticationFailed logs a failed validation with its reason.
func (o *LogObserver) AuthenticationFailed(err error) {
	o.logger.Warn("authentication failed",
		zap.String("reason", Reason(err)),
		zap.Error(err))
}
