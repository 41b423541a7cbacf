package eventbus

import (
	"context"

	"github.com/annel0/sky-shooter/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus) (Subscription, error) {
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		switch p := ev.Payload.(type) {
		case HitEvent:
			logging.Debug("[EventBus] %s tick=%d shot=%s actor=%s result=%s damage=%d",
				ev.EventType, p.Tick, p.ShotID, p.ActorID, p.Result, p.Damage)
		case KillEvent:
			logging.Debug("[EventBus] %s tick=%d actor=%s shot=%s", ev.EventType, p.Tick, p.ActorID, p.ShotID)
		default:
			logging.Debug("[EventBus] %s %s src=%s prio=%d", ev.ID, ev.EventType, ev.Source, ev.Priority)
		}
	})
	if err != nil {
		return nil, err
	}
	logging.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
