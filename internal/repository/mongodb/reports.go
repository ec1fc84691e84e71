package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// ReportRepository stores closed monthly reports.
type ReportRepository interface {
	SaveMonthlyReport(ctx context.Context, snapshot models.MonthlyReportSnapshot) error
}

// SaveMonthlyReport upserts the snapshot keyed by its month.
func (r *MongoDBRepository) SaveMonthlyReport(ctx context.Context, snapshot models.MonthlyReportSnapshot) error {
	_, err := r.collection(monthlyReportsCollection).ReplaceOne(ctx,
		bson.M{"_id": snapshot.MonthKey},
		snapshot,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save monthly report %s: %w", snapshot.MonthKey, err)
	}
	return nil
}
