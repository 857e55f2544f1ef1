package dynamo

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/domain/donation"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DonationRepository DynamoDB 實作的捐款倉儲
//
// DynamoDB 沒有跨項目事務，ctx 中的事務標記被忽略。
// 全域次要索引是最終一致的，剛寫入的捐款可能暫時查不到。
type DonationRepository struct {
	client API
	table  string
}

// NewDonationRepository 建構函數
func NewDonationRepository(client API, tables Tables) donation.DonationRepository {
	return &DonationRepository{client: client, table: tables.Donations}
}

// Save 條件寫入：donation_id 不存在才寫入
func (r *DonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	item, err := attributevalue.MarshalMap(toDonationItem(d))
	if err != nil {
		return donation.ErrRepositoryError.WithContext("reason", "marshal donation", "error", err.Error())
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(donation_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return donation.ErrDonationAlreadyExists.WithContext("donation_id", d.DonationID().String())
		}
		return donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}
	return nil
}

// FindByID 依主鍵查詢（強一致讀取）
func (r *DonationRepository) FindByID(ctx context.Context, id donation.DonationID) (*donation.Donation, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            donationKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}
	if result.Item == nil {
		return nil, donation.ErrDonationNotFound.WithContext("donation_id", id.String())
	}

	var item donationItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, donation.ErrCorruptedData.WithContext("donation_id", id.String(), "error", err.Error())
	}
	return toDomainDonation(item)
}

// FindByUserID 查詢 user_id-created_at 索引
func (r *DonationRepository) FindByUserID(ctx context.Context, userID donation.UserID) ([]*donation.Donation, error) {
	if userID.IsAnonymous() {
		return []*donation.Donation{}, nil
	}
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(IndexDonationsByUser),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID.String()},
		},
		ScanIndexForward: aws.Bool(true),
	})
}

// FindByAssociationID 查詢 association_id-created_at 索引
func (r *DonationRepository) FindByAssociationID(ctx context.Context, associationID donation.AssociationID, since time.Time) ([]*donation.Donation, error) {
	keyCondition := "association_id = :association_id"
	values := map[string]types.AttributeValue{
		":association_id": &types.AttributeValueMemberS{Value: associationID.String()},
	}
	if !since.IsZero() {
		keyCondition += " AND created_at >= :since"
		values[":since"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(toNanos(since), 10)}
	}

	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(IndexDonationsByAssociation),
		KeyConditionExpression:    aws.String(keyCondition),
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(true),
	})
}

// UpdateStatus 只更新狀態與收據偏好
func (r *DonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation) error {
	prefs := d.ReceiptPreferences()
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 donationKey(d.DonationID()),
		UpdateExpression:    aws.String("SET #status = :status, want_receipt = :want, monthly_receipt = :monthly, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(donation_id)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(d.Status())},
			":want":    &types.AttributeValueMemberBOOL{Value: prefs.WantReceipt},
			":monthly": &types.AttributeValueMemberBOOL{Value: prefs.MonthlyReceipt},
			":now":     &types.AttributeValueMemberN{Value: strconv.FormatInt(toNanos(time.Now()), 10)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return donation.ErrDonationNotFound.WithContext("donation_id", d.DonationID().String())
		}
		return donation.ErrRepositoryError.WithContext("dynamodb_error", err.Error())
	}
	return nil
}

// query 讀取所有分頁並依 createdAt 排序
func (r *DonationRepository) query(ctx context.Context, input *dynamodb.QueryInput) ([]*donation.Donation, error) {
	var items []donationItem
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, donation.ErrRepositoryError.WithContext(
				"index", aws.ToString(input.IndexName),
				"dynamodb_error", err.Error(),
			)
		}

		var page []donationItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, donation.ErrCorruptedData.WithContext("index", aws.ToString(input.IndexName), "error", err.Error())
		}
		items = append(items, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })

	donations := make([]*donation.Donation, 0, len(items))
	for _, item := range items {
		d, err := toDomainDonation(item)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}

func donationKey(id donation.DonationID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"donation_id": &types.AttributeValueMemberS{Value: id.String()},
	}
}
