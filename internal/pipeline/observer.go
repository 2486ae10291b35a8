package pipeline

import "go.uber.org/zap"

// ZapObserver renders stage changes through a zap logger. Status transitions
// and finalized log entries are logged at info; in-flight entries and
// progress ticks at debug, since the worker pools emit one per processed
// candidate.
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) StageStatus(name StageName, status Status) {
	o.logger.Info("stage status",
		zap.String("stage", string(name)),
		zap.String("status", string(status)),
	)
}

func (o *ZapObserver) StageLog(name StageName, entry LogEntry) {
	fields := []zap.Field{
		zap.String("stage", string(name)),
		zap.String("status", string(entry.Status)),
	}
	if entry.Details != "" {
		fields = append(fields, zap.String("details", entry.Details))
	}

	switch entry.Status {
	case StatusCompleted:
		o.logger.Info(entry.Label, fields...)
	case StatusError:
		o.logger.Warn(entry.Label, fields...)
	default:
		o.logger.Debug(entry.Label, fields...)
	}
}

func (o *ZapObserver) StageProgress(name StageName, percent int) {
	o.logger.Debug("stage progress",
		zap.String("stage", string(name)),
		zap.Int("percent", percent),
	)
}
