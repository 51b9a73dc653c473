package audit

import (
	"context"

	"fleetgate/internal/notify"
)

// NotificationObserver bridges dispatcher outcomes into the audit trail.
// Intermediate states are ignored; only delivery and silent failure are
// events worth keeping.
func NotificationObserver(pub *Publisher) func(notify.Job, notify.State) {
	return func(job notify.Job, state notify.State) {
		var action Action
		switch state {
		case notify.StateDelivered:
			action = ActionNotificationDelivered
		case notify.StateFailedSilently:
			action = ActionNotificationFailed
		default:
			return
		}
		_ = pub.Emit(context.Background(), Event{
			Action:  action,
			Subject: job.TemplateID,
			Params:  map[string]string{"job_id": job.ID},
		})
	}
}
