package dynamo

import (
	"context"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/achievement"
	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AchievementRepository 徽章存放在 users 資料表的 badges 字串集合
type AchievementRepository struct {
	client API
	table  string
}

// NewAchievementRepository 建構函數
func NewAchievementRepository(client API, tables Tables) achievement.AchievementRepository {
	return &AchievementRepository{client: client, table: tables.Users}
}

// AddBadge UpdateItem ADD badges :badge，ReturnValues=UPDATED_OLD
//
// ADD 對字串集合是冪等的；舊值中沒有該徽章表示本次是第一次寫入。
func (r *AchievementRepository) AddBadge(ctx context.Context, userID donation.UserID, badgeID achievement.BadgeID) (bool, error) {
	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              userKey(userID),
		UpdateExpression: aws.String("ADD badges :badge"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":badge": &types.AttributeValueMemberSS{Value: []string{string(badgeID)}},
		},
		ReturnValues: types.ReturnValueUpdatedOld,
	})
	if err != nil {
		return false, achievement.ErrRepositoryError.WithContext(
			"user_id", userID.String(),
			"badge_id", string(badgeID),
			"dynamodb_error", err.Error(),
		)
	}

	var old userBadgesItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &old); err != nil {
		return false, achievement.ErrRepositoryError.WithContext("user_id", userID.String(), "error", err.Error())
	}
	for _, held := range old.Badges {
		if held == string(badgeID) {
			return false, nil
		}
	}
	return true, nil
}

// FindBadges 強一致讀取 badges 屬性
func (r *AchievementRepository) FindBadges(ctx context.Context, userID donation.UserID) (achievement.BadgeSet, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.table),
		Key:                  userKey(userID),
		ProjectionExpression: aws.String("user_id, badges"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return nil, achievement.ErrRepositoryError.WithContext("user_id", userID.String(), "dynamodb_error", err.Error())
	}

	set := achievement.NewBadgeSet()
	if result.Item == nil {
		return set, nil
	}

	var item userBadgesItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, achievement.ErrRepositoryError.WithContext("user_id", userID.String(), "error", err.Error())
	}
	for _, id := range item.Badges {
		set.Add(achievement.BadgeID(id))
	}
	return set, nil
}

func userKey(userID donation.UserID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID.String()},
	}
}
