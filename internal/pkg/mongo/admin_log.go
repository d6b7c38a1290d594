package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminLogModel 管理员操作日志
type AdminLogModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID    uint64             `bson:"admin_id" json:"adminId"`
	Action     string             `bson:"action" json:"action"`          // 操作类型，如 user.role / news.delete
	TargetType string             `bson:"target_type" json:"targetType"` // user / news / report
	TargetID   uint64             `bson:"target_id" json:"targetId"`
	Detail     map[string]any     `bson:"detail,omitempty" json:"detail"`
	TraceID    string             `bson:"trace_id,omitempty" json:"traceId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
