package dynamo

import (
	"context"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ===========================
// 記憶體內 DynamoDB（只支援倉儲使用到的表達式）
// ===========================

type attrs = map[string]types.AttributeValue

type fakeDynamo struct {
	mu       sync.Mutex
	keys     map[string]string
	tables   map[string]map[string]attrs
	pageSize int
	err      error

	queryCalls int
}

func newFakeDynamo() *fakeDynamo {
	tables := DefaultTables()
	return &fakeDynamo{
		keys: map[string]string{
			tables.Donations: "donation_id",
			tables.Goals:     "association_id",
			tables.Users:     "user_id",
		},
		tables: map[string]map[string]attrs{},
	}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	table := aws.ToString(in.TableName)
	k := scalar(in.Item[f.keys[table]])
	existing := f.table(table)[k]
	if in.ConditionExpression != nil && !evalCondition(aws.ToString(in.ConditionExpression), existing, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, conditionFailed()
	}
	f.table(table)[k] = copyItem(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	table := aws.ToString(in.TableName)
	found, ok := f.table(table)[scalar(in.Key[f.keys[table]])]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(found)}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if f.err != nil {
		return nil, f.err
	}

	table := aws.ToString(in.TableName)
	pk := f.keys[table]

	var matched []attrs
	for _, it := range f.table(table) {
		if evalCondition(aws.ToString(in.KeyConditionExpression), it, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := number(matched[i]["created_at"]), number(matched[j]["created_at"])
		if a != b {
			return a < b
		}
		return scalar(matched[i][pk]) < scalar(matched[j][pk])
	})

	if start := in.ExclusiveStartKey; len(start) > 0 {
		for i, it := range matched {
			if scalar(it[pk]) == scalar(start[pk]) {
				matched = matched[i+1:]
				break
			}
		}
	}

	out := &dynamodb.QueryOutput{}
	if f.pageSize > 0 && len(matched) > f.pageSize {
		matched = matched[:f.pageSize]
		last := matched[len(matched)-1]
		out.LastEvaluatedKey = attrs{pk: last[pk]}
	}
	for _, it := range matched {
		out.Items = append(out.Items, copyItem(it))
	}
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	table := aws.ToString(in.TableName)
	pk := f.keys[table]
	k := scalar(in.Key[pk])
	existing := f.table(table)[k]
	if in.ConditionExpression != nil && !evalCondition(aws.ToString(in.ConditionExpression), existing, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, conditionFailed()
	}

	updated := copyItem(existing)
	if updated == nil {
		updated = copyItem(in.Key)
	}
	old := attrs{}

	expr := aws.ToString(in.UpdateExpression)
	switch {
	case strings.HasPrefix(expr, "SET "):
		for _, assignment := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
			parts := strings.SplitN(assignment, "=", 2)
			name := resolveName(strings.TrimSpace(parts[0]), in.ExpressionAttributeNames)
			if v, ok := updated[name]; ok {
				old[name] = v
			}
			updated[name] = in.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
		}
	case strings.HasPrefix(expr, "ADD "):
		parts := strings.Fields(strings.TrimPrefix(expr, "ADD "))
		name := resolveName(parts[0], in.ExpressionAttributeNames)
		add := in.ExpressionAttributeValues[parts[1]].(*types.AttributeValueMemberSS).Value

		var current []string
		if v, ok := updated[name]; ok {
			old[name] = v
			current = append(current, v.(*types.AttributeValueMemberSS).Value...)
		}
		for _, s := range add {
			if !containsString(current, s) {
				current = append(current, s)
			}
		}
		updated[name] = &types.AttributeValueMemberSS{Value: current}
	}

	f.table(table)[k] = updated

	out := &dynamodb.UpdateItemOutput{}
	if in.ReturnValues == types.ReturnValueUpdatedOld && len(old) > 0 {
		out.Attributes = old
	}
	return out, nil
}

// stored 直接讀取資料表內容（測試斷言用）
func (f *fakeDynamo) stored(table, key string) attrs {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyItem(f.table(table)[key])
}

func (f *fakeDynamo) table(name string) map[string]attrs {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]attrs{}
		f.tables[name] = t
	}
	return t
}

// evalCondition 支援 attribute_exists / attribute_not_exists / = / >=，以 AND 串接
func evalCondition(expr string, it attrs, names map[string]string, values map[string]types.AttributeValue) bool {
	for _, clause := range strings.Split(expr, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "attribute_not_exists("):
			name := resolveName(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_not_exists("), ")"), names)
			if it != nil && it[name] != nil {
				return false
			}
		case strings.HasPrefix(clause, "attribute_exists("):
			name := resolveName(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_exists("), ")"), names)
			if it == nil || it[name] == nil {
				return false
			}
		case strings.Contains(clause, " >= "):
			parts := strings.SplitN(clause, " >= ", 2)
			v, ok := it[resolveName(parts[0], names)]
			if !ok || number(v) < number(values[parts[1]]) {
				return false
			}
		case strings.Contains(clause, " = "):
			parts := strings.SplitN(clause, " = ", 2)
			v, ok := it[resolveName(parts[0], names)]
			if !ok || !reflect.DeepEqual(v, values[parts[1]]) {
				return false
			}
		}
	}
	return true
}

func resolveName(name string, names map[string]string) string {
	if actual, ok := names[name]; ok {
		return actual
	}
	return name
}

func scalar(v types.AttributeValue) string {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	}
	return ""
}

func number(v types.AttributeValue) int64 {
	n, _ := strconv.ParseInt(scalar(v), 10, 64)
	return n
}

func copyItem(in attrs) attrs {
	if in == nil {
		return nil
	}
	out := make(attrs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}
