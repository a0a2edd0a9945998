package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrKriegler/motor-rating/internal/core"
)

type CoverRuleItem struct {
	Code         string  `dynamodbav:"code"`
	CoverPercent float64 `dynamodbav:"cover_percent"`
	MaxAmount    float64 `dynamodbav:"max_amount"`
}

type AddonItem struct {
	ID           int     `dynamodbav:"id"`
	CoverPercent float64 `dynamodbav:"cover_percent"`
	FlatAmount   float64 `dynamodbav:"flat_amount"`
}

// CoverRuleRepo implements core.CoverRateTable.
type CoverRuleRepo struct {
	client *dynamodb.Client
}

func NewCoverRuleRepo(client *dynamodb.Client) *CoverRuleRepo {
	return &CoverRuleRepo{client: client}
}

func (r *CoverRuleRepo) FetchByCode(ctx context.Context, code string) (core.CoverRateRule, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableCoverRules),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return core.CoverRateRule{}, fmt.Errorf("%s.getItem: %w", TableCoverRules, err)
	}
	if out.Item == nil {
		return core.CoverRateRule{}, fmt.Errorf("%w: cover rule %s", core.ErrNotFound, code)
	}
	var item CoverRuleItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.CoverRateRule{}, fmt.Errorf("%s.unmarshal: %w", TableCoverRules, err)
	}
	return core.CoverRateRule{Code: item.Code, CoverPercent: item.CoverPercent, MaxAmount: item.MaxAmount}, nil
}

// AddonRepo implements core.AddonRateTable.
type AddonRepo struct {
	client *dynamodb.Client
}

func NewAddonRepo(client *dynamodb.Client) *AddonRepo {
	return &AddonRepo{client: client}
}

func (r *AddonRepo) GetAddon(ctx context.Context, id int) (core.AddonRate, error) {
	return r.get(ctx, TableAddons, id, "addon")
}

func (r *AddonRepo) GetBundle(ctx context.Context, id int) (core.AddonRate, error) {
	return r.get(ctx, TableAddonBundles, id, "addon bundle")
}

func (r *AddonRepo) get(ctx context.Context, table string, id int, kind string) (core.AddonRate, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		},
	})
	if err != nil {
		return core.AddonRate{}, fmt.Errorf("%s.getItem: %w", table, err)
	}
	if out.Item == nil {
		return core.AddonRate{}, fmt.Errorf("%w: %s %d", core.ErrNotFound, kind, id)
	}
	var item AddonItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.AddonRate{}, fmt.Errorf("%s.unmarshal: %w", table, err)
	}
	return core.AddonRate{ID: item.ID, CoverPercent: item.CoverPercent, FlatAmount: item.FlatAmount}, nil
}
