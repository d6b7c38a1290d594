package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminLogRepo interface {
	CreateLog(ctx context.Context, entry *AdminLogModel) error
	ListLogs(ctx context.Context, action string, limit, offset int64) ([]*AdminLogModel, int64, error)
}

type adminLogRepoImpl struct {
	col *mongo.Collection
}

func NewAdminLogRepo(db *mongo.Database) AdminLogRepo {
	return &adminLogRepoImpl{
		col: db.Collection(adminLogCollection),
	}
}

func (s *adminLogRepoImpl) CreateLog(ctx context.Context, entry *AdminLogModel) error {
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// ListLogs 按时间倒序分页，action 为空时不过滤
func (s *adminLogRepoImpl) ListLogs(ctx context.Context, action string, limit, offset int64) ([]*AdminLogModel, int64, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*AdminLogModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
