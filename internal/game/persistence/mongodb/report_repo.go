package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/errs"
	"github.com/peppone-choi/opensamguk-sub002/internal/war"
)

const reportCollectionName = "battle_report"

// BattleReportRepository 战报只追加，不更新。
type BattleReportRepository struct {
	coll *mongo.Collection
}

func NewBattleReportRepository(db *mongo.Database) *BattleReportRepository {
	return &BattleReportRepository{
		coll: db.Collection(reportCollectionName),
	}
}

const OpSaveBattleReport = "repo.report.Save"

func (r *BattleReportRepository) SaveBattleReport(ctx context.Context, report *war.BattleReport) error {
	if report == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb report collection is nil")
	}

	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return errs.Wrap(OpSaveBattleReport, errs.KindInfra, err, map[string]any{
			"worldId": report.WorldID, "attackerId": report.AttackerID,
		})
	}
	return nil
}
