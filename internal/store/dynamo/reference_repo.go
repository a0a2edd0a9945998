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

type VariantItem struct {
	ID            int     `dynamodbav:"id"`
	VehicleClass  string  `dynamodbav:"vehicle_class"`
	VehicleType   string  `dynamodbav:"vehicle_type"`
	FuelTypeCode  string  `dynamodbav:"fuel_type_code"`
	CubicCapacity int     `dynamodbav:"cubic_capacity"`
	Kilowatt      float64 `dynamodbav:"kilowatt"`
}

type SubVariantItem struct {
	ID              int     `dynamodbav:"id"`
	VariantID       int     `dynamodbav:"variant_id"`
	ExShowroomPrice float64 `dynamodbav:"ex_showroom_price"`
}

type VehicleCoverItem struct {
	ID       int `dynamodbav:"id"`
	ODTenure int `dynamodbav:"od_tenure"`
	TPTenure int `dynamodbav:"tp_tenure"`
}

type RTOZoneItem struct {
	ID   int    `dynamodbav:"id"`
	Zone string `dynamodbav:"zone"`
}

type InsurerDiscountItem struct {
	InsurerID   int     `dynamodbav:"insurer_id"`
	MaxDiscount float64 `dynamodbav:"max_discount"`
}

type DepreciationSlabItem struct {
	ID     int     `dynamodbav:"id"`
	AgeMin int     `dynamodbav:"age_min"`
	AgeMax int     `dynamodbav:"age_max"`
	Rate   float64 `dynamodbav:"rate"`
}

type NCBSlabItem struct {
	ID      int     `dynamodbav:"id"`
	Percent float64 `dynamodbav:"percent"`
}

type VoluntaryDeductibleItem struct {
	ScopeKey        string  `dynamodbav:"scope_key"` // "<vehicle_type>#<amount>"
	VehicleType     string  `dynamodbav:"vehicle_type"`
	Amount          float64 `dynamodbav:"amount"`
	DiscountPercent float64 `dynamodbav:"discount_percent"`
	MaxDiscount     float64 `dynamodbav:"max_discount"`
}

type PACoverValueItem struct {
	CoverCode string  `dynamodbav:"cover_code"`
	Value     float64 `dynamodbav:"value"`
}

// VoluntaryDeductibleKey builds the hash key for a deductible scope.
func VoluntaryDeductibleKey(vehicleType string, amount float64) string {
	return vehicleType + "#" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// ReferenceRepo implements core.ReferenceDataGateway on DynamoDB.
type ReferenceRepo struct {
	client *dynamodb.Client
}

func NewReferenceRepo(client *dynamodb.Client) *ReferenceRepo {
	return &ReferenceRepo{client: client}
}

func (r *ReferenceRepo) GetVariant(ctx context.Context, id int) (core.Variant, error) {
	var item VariantItem
	if err := r.getByNumericID(ctx, TableVariants, id, &item); err != nil {
		return core.Variant{}, err
	}
	return core.Variant{
		ID:            item.ID,
		VehicleClass:  item.VehicleClass,
		VehicleType:   item.VehicleType,
		FuelTypeCode:  item.FuelTypeCode,
		CubicCapacity: item.CubicCapacity,
		Kilowatt:      item.Kilowatt,
	}, nil
}

func (r *ReferenceRepo) GetSubVariant(ctx context.Context, id int) (core.SubVariant, error) {
	var item SubVariantItem
	if err := r.getByNumericID(ctx, TableSubVariants, id, &item); err != nil {
		return core.SubVariant{}, err
	}
	return core.SubVariant{ID: item.ID, VariantID: item.VariantID, ExShowroomPrice: item.ExShowroomPrice}, nil
}

func (r *ReferenceRepo) GetVehicleCover(ctx context.Context, id int) (core.VehicleCover, error) {
	var item VehicleCoverItem
	if err := r.getByNumericID(ctx, TableVehicleCovers, id, &item); err != nil {
		return core.VehicleCover{}, err
	}
	return core.VehicleCover{ID: item.ID, ODTenure: item.ODTenure, TPTenure: item.TPTenure}, nil
}

func (r *ReferenceRepo) GetRTOZone(ctx context.Context, rtoID int) (string, error) {
	var item RTOZoneItem
	if err := r.getByNumericID(ctx, TableRTOZones, rtoID, &item); err != nil {
		return "", err
	}
	return item.Zone, nil
}

func (r *ReferenceRepo) GetMaxDiscount(ctx context.Context, insurerID int) (float64, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableInsurerDiscounts),
		Key: map[string]types.AttributeValue{
			"insurer_id": &types.AttributeValueMemberN{Value: strconv.Itoa(insurerID)},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%s.getItem: %w", TableInsurerDiscounts, err)
	}
	if out.Item == nil {
		return 0, fmt.Errorf("%w: insurer discount %d", core.ErrNotFound, insurerID)
	}
	var item InsurerDiscountItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TableInsurerDiscounts, err)
	}
	return item.MaxDiscount, nil
}

func (r *ReferenceRepo) GetDepreciationRate(ctx context.Context, vehicleAge int) (float64, error) {
	cond := expression.Name("age_min").LessThanEqual(expression.Value(vehicleAge)).
		And(expression.Name("age_max").GreaterThanEqual(expression.Value(vehicleAge)))
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return 0, fmt.Errorf("%s.buildExpr: %w", TableDepreciationSlabs, err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(TableDepreciationSlabs),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return 0, fmt.Errorf("%s.scan: %w", TableDepreciationSlabs, err)
	}
	if len(out.Items) == 0 {
		return 0, fmt.Errorf("%w: depreciation slab for age %d", core.ErrNotFound, vehicleAge)
	}
	var item DepreciationSlabItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TableDepreciationSlabs, err)
	}
	return item.Rate, nil
}

func (r *ReferenceRepo) GetNCBPercent(ctx context.Context, ncbID int) (float64, error) {
	var item NCBSlabItem
	if err := r.getByNumericID(ctx, TableNCBSlabs, ncbID, &item); err != nil {
		return 0, err
	}
	return item.Percent, nil
}

func (r *ReferenceRepo) GetVoluntaryDeductible(ctx context.Context, vehicleType string, amount float64) (core.VoluntaryDeductible, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableVoluntaryDeductibles),
		Key: map[string]types.AttributeValue{
			"scope_key": &types.AttributeValueMemberS{Value: VoluntaryDeductibleKey(vehicleType, amount)},
		},
	})
	if err != nil {
		return core.VoluntaryDeductible{}, fmt.Errorf("%s.getItem: %w", TableVoluntaryDeductibles, err)
	}
	if out.Item == nil {
		return core.VoluntaryDeductible{}, fmt.Errorf("%w: voluntary deductible %s/%.0f", core.ErrNotFound, vehicleType, amount)
	}
	var item VoluntaryDeductibleItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.VoluntaryDeductible{}, fmt.Errorf("%s.unmarshal: %w", TableVoluntaryDeductibles, err)
	}
	return core.VoluntaryDeductible{DiscountPercent: item.DiscountPercent, MaxDiscount: item.MaxDiscount}, nil
}

func (r *ReferenceRepo) GetPACoverValue(ctx context.Context, coverCode string) (float64, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TablePACoverValues),
		Key: map[string]types.AttributeValue{
			"cover_code": &types.AttributeValueMemberS{Value: coverCode},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%s.getItem: %w", TablePACoverValues, err)
	}
	if out.Item == nil {
		return 0, fmt.Errorf("%w: pa cover value %s", core.ErrNotFound, coverCode)
	}
	var item PACoverValueItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("%s.unmarshal: %w", TablePACoverValues, err)
	}
	return item.Value, nil
}

func (r *ReferenceRepo) getByNumericID(ctx context.Context, table string, id int, dest interface{}) error {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		},
	})
	if err != nil {
		return fmt.Errorf("%s.getItem: %w", table, err)
	}
	if out.Item == nil {
		return fmt.Errorf("%w: %s %d", core.ErrNotFound, table, id)
	}
	if err := attributevalue.UnmarshalMap(out.Item, dest); err != nil {
		return fmt.Errorf("%s.unmarshal: %w", table, err)
	}
	return nil
}
