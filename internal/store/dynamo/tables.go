package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table names
const (
	TableVariants             = "rating_variants"
	TableSubVariants          = "rating_sub_variants"
	TableVehicleCovers        = "rating_vehicle_covers"
	TableRTOZones             = "rating_rto_zones"
	TableInsurerDiscounts     = "rating_insurer_discounts"
	TableDepreciationSlabs    = "rating_depreciation_slabs"
	TableNCBSlabs             = "rating_ncb_slabs"
	TableVoluntaryDeductibles = "rating_voluntary_deductibles"
	TablePACoverValues        = "rating_pa_cover_values"
	TableODRates              = "rating_od_rates"
	TableTPRates              = "rating_tp_rates"
	TablePARates              = "rating_pa_rates"
	TableCoverRules           = "rating_cover_rules"
	TableAddons               = "rating_addons"
	TableAddonBundles         = "rating_addon_bundles"
)

// EnsureTables creates all required tables if they don't exist. All tables
// are keyed by a single hash attribute; band selection happens via filter
// expressions since the rate tables are small.
func EnsureTables(ctx context.Context, client *dynamodb.Client, log *slog.Logger) error {
	tables := []struct {
		name    string
		keyName string
		keyType types.ScalarAttributeType
	}{
		{TableVariants, "id", types.ScalarAttributeTypeN},
		{TableSubVariants, "id", types.ScalarAttributeTypeN},
		{TableVehicleCovers, "id", types.ScalarAttributeTypeN},
		{TableRTOZones, "id", types.ScalarAttributeTypeN},
		{TableInsurerDiscounts, "insurer_id", types.ScalarAttributeTypeN},
		{TableDepreciationSlabs, "id", types.ScalarAttributeTypeN},
		{TableNCBSlabs, "id", types.ScalarAttributeTypeN},
		{TableVoluntaryDeductibles, "scope_key", types.ScalarAttributeTypeS},
		{TablePACoverValues, "cover_code", types.ScalarAttributeTypeS},
		{TableODRates, "id", types.ScalarAttributeTypeN},
		{TableTPRates, "id", types.ScalarAttributeTypeN},
		{TablePARates, "scope_key", types.ScalarAttributeTypeS},
		{TableCoverRules, "code", types.ScalarAttributeTypeS},
		{TableAddons, "id", types.ScalarAttributeTypeN},
		{TableAddonBundles, "id", types.ScalarAttributeTypeN},
	}

	for _, t := range tables {
		exists, err := tableExists(ctx, client, t.name)
		if err != nil {
			return fmt.Errorf("check table %s: %w", t.name, err)
		}
		if exists {
			log.Info("table exists", "table", t.name)
			continue
		}

		log.Info("creating table", "table", t.name)
		if err := createHashTable(ctx, client, t.name, t.keyName, t.keyType); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Info("table created", "table", t.name)
	}

	return nil
}

func tableExists(ctx context.Context, client *dynamodb.Client, name string) (bool, error) {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func createHashTable(ctx context.Context, client *dynamodb.Client, name, keyName string, keyType types.ScalarAttributeType) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyName), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyName), AttributeType: keyType},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	return err
}
