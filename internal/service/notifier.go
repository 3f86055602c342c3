package service

import (
	"context"
	"encoding/json"
	"fmt"
	"rebirth_backend/internal/config"
	"rebirth_backend/internal/model"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/util"
	"rebirth_backend/pkg/logger"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

// Notifier 平台通知展示能力
type Notifier interface {
	Show(ctx context.Context, device string, payload model.NotificationPayload) error
}

// WebPushNotifier 通过设备注册的 Web Push 订阅投递通知
type WebPushNotifier struct {
	State *repository.StateRepository
	Cfg   *config.NotificationConfig
}

func NewWebPushNotifier(state *repository.StateRepository, cfg *config.NotificationConfig) *WebPushNotifier {
	return &WebPushNotifier{State: state, Cfg: cfg}
}

func (n *WebPushNotifier) Show(ctx context.Context, device string, payload model.NotificationPayload) error {
	sub, ok := n.State.PushSubscription(ctx, device)
	if !ok {
		return util.ErrNoSubscription
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotificationWithContext(ctx, raw, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		Subscriber:      n.Cfg.Subscriber,
		VAPIDPublicKey:  n.Cfg.VAPIDPublicKey,
		VAPIDPrivateKey: n.Cfg.VAPIDPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier 没有推送订阅时的页面内展示替身，只写结构化日志
type LogNotifier struct{}

func (LogNotifier) Show(_ context.Context, device string, payload model.NotificationPayload) error {
	logger.Log.Info("notification displayed",
		zap.String("device", device),
		zap.String("tag", payload.Tag),
		zap.String("title", payload.Title),
		zap.String("body", payload.Body),
	)
	return nil
}
