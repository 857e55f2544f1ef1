package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API 倉儲使用到的 DynamoDB 操作
//
// *dynamodb.Client 實現此介面；測試使用記憶體內的 fake。
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// 索引名稱
const (
	IndexDonationsByUser        = "user_id-created_at"
	IndexDonationsByAssociation = "association_id-created_at"
)

// Tables 資料表名稱
type Tables struct {
	Donations string
	Goals     string
	Users     string
}

// DefaultTables 預設資料表名稱
func DefaultTables() Tables {
	return Tables{
		Donations: "donations",
		Goals:     "goals",
		Users:     "users",
	}
}

// NewClient 建立 DynamoDB client
//
// endpoint 不為空時覆寫服務端點（本地 DynamoDB）。
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// isConditionalCheckFailed 條件寫入被拒絕
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
