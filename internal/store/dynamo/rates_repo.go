package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrKriegler/motor-rating/internal/core"
)

type ODRateItem struct {
	ID           int     `dynamodbav:"id"`
	VehicleType  string  `dynamodbav:"vehicle_type"`
	FuelTypeCode string  `dynamodbav:"fuel_type_code"`
	RTOZone      string  `dynamodbav:"rto_zone"`
	Tenure       int     `dynamodbav:"tenure"`
	CCMin        int     `dynamodbav:"cc_min"`
	CCMax        int     `dynamodbav:"cc_max"`
	KWMin        float64 `dynamodbav:"kw_min"`
	KWMax        float64 `dynamodbav:"kw_max"`
	Rate         float64 `dynamodbav:"rate"`
}

type TPRateItem struct {
	ID           int     `dynamodbav:"id"`
	VehicleType  string  `dynamodbav:"vehicle_type"`
	FuelTypeCode string  `dynamodbav:"fuel_type_code"`
	Tenure       int     `dynamodbav:"tenure"`
	CCMin        int     `dynamodbav:"cc_min"`
	CCMax        int     `dynamodbav:"cc_max"`
	KWMin        float64 `dynamodbav:"kw_min"`
	KWMax        float64 `dynamodbav:"kw_max"`
	Amount       float64 `dynamodbav:"amount"`
}

type PARateItem struct {
	ScopeKey   string  `dynamodbav:"scope_key"` // "<insurer_id>#<vehicle_type>#<tenure>#<cover_code>"
	Multiplier float64 `dynamodbav:"multiplier"`
}

// PARateKey builds the hash key for a PA multiplier scope.
func PARateKey(scope core.PARateScope) string {
	return strconv.Itoa(scope.InsurerID) + "#" + scope.VehicleType + "#" +
		strconv.Itoa(scope.Tenure) + "#" + scope.CoverCode
}

// ODRateRepo implements core.ODRateTable. Band selection scans with a
// filter expression; the rate tables hold a few hundred rows at most.
type ODRateRepo struct {
	client *dynamodb.Client
}

func NewODRateRepo(client *dynamodb.Client) *ODRateRepo {
	return &ODRateRepo{client: client}
}

func (r *ODRateRepo) Lookup(ctx context.Context, scope core.ODRateScope) (float64, error) {
	cond := expression.Name("vehicle_type").Equal(expression.Value(scope.VehicleType)).
		And(expression.Name("fuel_type_code").Equal(expression.Value(scope.FuelTypeCode))).
		And(expression.Name("rto_zone").Equal(expression.Value(scope.RTOZone))).
		And(expression.Name("tenure").Equal(expression.Value(scope.Tenure))).
		And(expression.Name("cc_min").LessThanEqual(expression.Value(scope.CubicCapacity))).
		And(expression.Name("cc_max").GreaterThanEqual(expression.Value(scope.CubicCapacity))).
		And(expression.Name("kw_min").LessThanEqual(expression.Value(scope.Kilowatt))).
		And(expression.Name("kw_max").GreaterThanEqual(expression.Value(scope.Kilowatt)))

	item, err := scanOneRate(ctx, r.client, TableODRates, cond)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, fmt.Errorf("%w: od rate band %+v", core.ErrNotFound, scope)
	}

	var doc ODRateItem
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TableODRates, err)
	}
	return doc.Rate, nil
}

// TPRateRepo implements core.TPRateTable.
type TPRateRepo struct {
	client *dynamodb.Client
}

func NewTPRateRepo(client *dynamodb.Client) *TPRateRepo {
	return &TPRateRepo{client: client}
}

func (r *TPRateRepo) Lookup(ctx context.Context, scope core.TPRateScope) (float64, error) {
	cond := expression.Name("vehicle_type").Equal(expression.Value(scope.VehicleType)).
		And(expression.Name("fuel_type_code").Equal(expression.Value(scope.FuelTypeCode))).
		And(expression.Name("tenure").Equal(expression.Value(scope.Tenure))).
		And(expression.Name("cc_min").LessThanEqual(expression.Value(scope.CubicCapacity))).
		And(expression.Name("cc_max").GreaterThanEqual(expression.Value(scope.CubicCapacity))).
		And(expression.Name("kw_min").LessThanEqual(expression.Value(scope.Kilowatt))).
		And(expression.Name("kw_max").GreaterThanEqual(expression.Value(scope.Kilowatt)))

	item, err := scanOneRate(ctx, r.client, TableTPRates, cond)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, fmt.Errorf("%w: tp rate band %+v", core.ErrNotFound, scope)
	}

	var doc TPRateItem
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TableTPRates, err)
	}
	return doc.Amount, nil
}

// PARateRepo implements core.PARateTable.
type PARateRepo struct {
	client *dynamodb.Client
}

func NewPARateRepo(client *dynamodb.Client) *PARateRepo {
	return &PARateRepo{client: client}
}

func (r *PARateRepo) Lookup(ctx context.Context, scope core.PARateScope) (float64, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TablePARates),
		Key: map[string]types.AttributeValue{
			"scope_key": &types.AttributeValueMemberS{Value: PARateKey(scope)},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%s.getItem: %w", TablePARates, err)
	}
	if out.Item == nil {
		return 0, fmt.Errorf("%w: pa rate %+v", core.ErrNotFound, scope)
	}
	var item PARateItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TablePARates, err)
	}
	return item.Multiplier, nil
}

func scanOneRate(ctx context.Context, client *dynamodb.Client, table string, cond expression.ConditionBuilder) (map[string]types.AttributeValue, error) {
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("%s.buildExpr: %w", table, err)
	}

	out, err := client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s.scan: %w", table, err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return out.Items[0], nil
}
