package audit

import (
	"context"
	"time"

	"voicelens/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AuditAction string

const (
	ActionPurchaseRecorded      AuditAction = "PURCHASE_RECORDED"
	ActionSubscriptionActivated AuditAction = "SUBSCRIPTION_ACTIVATED"
	ActionSubscriptionCanceled  AuditAction = "SUBSCRIPTION_CANCELED"
	ActionDebugOverride         AuditAction = "DEBUG_OVERRIDE"
	ActionLogin                 AuditAction = "LOGIN"
)

type AuditLog struct {
	Action    AuditAction            `bson:"action"`
	CompanyID string                 `bson:"company_id,omitempty"`
	ActorID   string                 `bson:"actor_id,omitempty"`
	Details   map[string]interface{} `bson:"details,omitempty"`
	Timestamp time.Time              `bson:"timestamp"`
}

// AuditService records entitlement mutations and logins. Writes are
// best-effort: the sink may be disabled and failures only log a warning.
type AuditService interface {
	LogChange(ctx context.Context, action AuditAction, companyID, actorID string, details map[string]interface{})
}

type AuditServiceImpl struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewAuditService(sink *database.MongodbDB, logger *zap.Logger) AuditService {
	svc := &AuditServiceImpl{logger: logger}
	if sink.Enabled() {
		svc.collection = sink.DB.Collection("audit_logs")
	}
	return svc
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action AuditAction, companyID, actorID string, details map[string]interface{}) {
	if s.collection == nil {
		return
	}

	entry := AuditLog{
		Action:    action,
		CompanyID: companyID,
		ActorID:   actorID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log",
			zap.String("action", string(action)), zap.Error(err))
	}
}
