package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

const snapshotCollectionName = "turn_snapshot"

// SnapshotRepository 月度快照的 MongoDB 归档。
// 同一世界同一年月只留一份，重跑回合时覆盖。
type SnapshotRepository struct {
	coll *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{
		coll: db.Collection(snapshotCollectionName),
	}
}

const OpSaveSnapshot = "repo.snapshot.Save"

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snap *turn.Snapshot) error {
	if snap == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb snapshot collection is nil")
	}

	filter := bson.M{"worldId": snap.WorldID, "year": snap.Year, "month": snap.Month}
	_, err := r.coll.ReplaceOne(ctx, filter, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(OpSaveSnapshot, errs.KindInfra, err, map[string]any{
			"worldId": snap.WorldID, "year": snap.Year, "month": snap.Month,
		})
	}
	return nil
}
