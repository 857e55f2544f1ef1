package dynamo

import (
	"context"
	"strconv"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GoalRepository DynamoDB 實作的募款目標倉儲
type GoalRepository struct {
	client API
	table  string
}

// NewGoalRepository 建構函數
func NewGoalRepository(client API, tables Tables) donation.GoalRepository {
	return &GoalRepository{client: client, table: tables.Goals}
}

// Save 以 association_id 為主鍵，已存在時拒絕寫入
func (r *GoalRepository) Save(ctx context.Context, g *donation.Goal) error {
	item, err := attributevalue.MarshalMap(toGoalItem(g))
	if err != nil {
		return donation.ErrRepositoryError.WithContext("reason", "marshal goal", "error", err.Error())
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(association_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return donation.ErrGoalAlreadyExists.WithContext("association_id", g.AssociationID().String())
		}
		return donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}
	return nil
}

// FindByAssociationID 強一致讀取
func (r *GoalRepository) FindByAssociationID(ctx context.Context, associationID donation.AssociationID) (*donation.Goal, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            goalKey(associationID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}
	if result.Item == nil {
		return nil, donation.ErrGoalNotFound.WithContext("association_id", associationID.String())
	}

	var item goalItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, donation.ErrCorruptedData.WithContext("association_id", associationID.String(), "error", err.Error())
	}
	return toDomainGoal(item)
}

// MarkCompleted 條件更新：ConditionExpression completed = :false
//
// 條件失敗時再讀一次，區分「已被完成」與「目標不存在」。
func (r *GoalRepository) MarkCompleted(ctx context.Context, g *donation.Goal) (bool, error) {
	if !g.IsCompleted() || g.CompletedAt() == nil {
		return false, donation.ErrRepositoryError.WithContext(
			"goal_id", g.GoalID().String(),
			"reason", "goal must be marked completed before persisting",
		)
	}

	update := "SET completed = :true, completed_at = :completed_at"
	values := map[string]types.AttributeValue{
		":true":         &types.AttributeValueMemberBOOL{Value: true},
		":false":        &types.AttributeValueMemberBOOL{Value: false},
		":goal_id":      &types.AttributeValueMemberS{Value: g.GoalID().String()},
		":completed_at": &types.AttributeValueMemberN{Value: strconv.FormatInt(toNanos(*g.CompletedAt()), 10)},
	}
	if !g.CompletedBy().IsAnonymous() {
		update += ", completed_by = :completed_by"
		values[":completed_by"] = &types.AttributeValueMemberS{Value: g.CompletedBy().String()}
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       goalKey(g.AssociationID()),
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("goal_id = :goal_id AND completed = :false"),
		ExpressionAttributeValues: values,
	})
	if err == nil {
		return true, nil
	}
	if !isConditionalCheckFailed(err) {
		return false, donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}

	current, err := r.FindByAssociationID(ctx, g.AssociationID())
	if err != nil {
		return false, err
	}
	if current.GoalID().String() != g.GoalID().String() {
		return false, donation.ErrGoalNotFound.WithContext("goal_id", g.GoalID().String())
	}
	return false, nil
}

func goalKey(associationID donation.AssociationID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"association_id": &types.AttributeValueMemberS{Value: associationID.String()},
	}
}
