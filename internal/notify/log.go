package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes events to the structured log. It stands in for a mail or CRM integration.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a LogNotifier; a nil logger discards output.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the event at info level.
func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("id", event.ID),
		zap.String("kind", event.Kind),
		zap.String("email", event.Email),
	}
	if event.Name != "" {
		fields = append(fields, zap.String("name", event.Name))
	}
	if event.FormType != "" {
		fields = append(fields, zap.String("form_type", event.FormType))
	}
	if event.OrganizationName != "" {
		fields = append(fields, zap.String("organization_name", event.OrganizationName))
	}
	if len(event.PartnershipTypes) > 0 {
		fields = append(fields, zap.Strings("partnership_types", event.PartnershipTypes))
	}
	if event.InterestArea != "" {
		fields = append(fields, zap.String("interest_area", event.InterestArea))
	}
	n.logger.Info("intake notification", fields...)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
