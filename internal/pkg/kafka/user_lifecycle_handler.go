package kafka

import (
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
)

// UserLifecycleHandler 消费身份提供方的用户创建、更新、删除事件
// 投递至少一次，所有分支都必须可重入
type UserLifecycleHandler struct {
	identitySvc service.IdentityService
	cascadeSvc  service.CascadeService
}

func NewUserLifecycleHandler(identitySvc service.IdentityService, cascadeSvc service.CascadeService) *UserLifecycleHandler {
	return &UserLifecycleHandler{
		identitySvc: identitySvc,
		cascadeSvc:  cascadeSvc,
	}
}

func (s *UserLifecycleHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user lifecycle consumer setup")
	return nil
}

func (s *UserLifecycleHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user lifecycle consumer cleanup")
	return nil
}

func (s *UserLifecycleHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user-lifecycle consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, s.Handle); err != nil {
		log.Error("topic-user-lifecycle process batch error", "err", err)
		return err
	}
	return nil
}

// Handle 输入本身有问题的事件记录后跳过，其余错误交给重试
func (s *UserLifecycleHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := DecodeUserEvent(msg.Value)
	if err != nil {
		log.WarnContext(ctx, "skip malformed user event", "offset", msg.Offset, "err", err)
		return nil
	}

	err = s.apply(ctx, event)
	if err != nil && (errors.Is(err, service.ErrMissingEmail) || service.IsInvalidInput(err)) {
		log.WarnContext(ctx, "skip invalid user event", "type", event.Type, "external_id", event.ExternalID, "err", err)
		return nil
	}
	return err
}

func (s *UserLifecycleHandler) apply(ctx context.Context, event *UserEvent) error {
	switch event.Type {
	case consts.EventUserCreated:
		user, err := s.identitySvc.Resolve(ctx, event.Claims)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "user synced", "external_id", event.ExternalID, "user_id", user.ID)

	case consts.EventUserUpdated:
		if _, err := s.identitySvc.Refresh(ctx, event.Claims); err != nil {
			return err
		}

	case consts.EventUserDeleted:
		report, err := s.cascadeSvc.DeleteUserByExternalID(ctx, event.ExternalID)
		if err != nil {
			return err
		}
		if report != nil {
			log.InfoContext(ctx, "user deleted via event", "external_id", event.ExternalID, "user_id", report.UserID)
		}
	}
	return nil
}
