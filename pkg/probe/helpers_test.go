package probe

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/ddbprobe/dyndb"
	"github.com/raywall/ddbprobe/pkg/config"
	"github.com/stretchr/testify/require"
)

// Expressões esperadas, já com placeholders resolvidos.
const (
	filterNone         = ""
	filterMetadata     = `SK = "METADATA"`
	filterLocation     = `EntityType = "Property"`
	filterCity         = `(EntityType = "Property") AND (Address.city = "Dubai")`
	filterCityMetadata = `((SK = "METADATA") AND (EntityType = "Property")) AND (Address.city = "Dubai")`
	keyLocation        = `GSI1PK = "CITY#Dubai#UAE"`
)

// fakeTable responde Scan/Query conforme a expressão recebida, montado
// sobre as funções do dyndb.MockDynamoClient.
type fakeTable struct {
	*dyndb.MockDynamoClient

	mu sync.Mutex

	scans      map[string]*dynamodb.ScanOutput
	scanErrs   map[string]error
	query      *dynamodb.QueryOutput
	queryErr   error
	blockUntil bool // bloqueia até o contexto expirar

	scanInputs  []*dynamodb.ScanInput
	queryInputs []*dynamodb.QueryInput
}

func newFakeTable() *fakeTable {
	f := &fakeTable{
		MockDynamoClient: &dyndb.MockDynamoClient{},
		scans:            map[string]*dynamodb.ScanOutput{},
		scanErrs:         map[string]error{},
	}
	f.ScanFn = f.scan
	f.QueryFn = f.queryFn
	return f
}

func (f *fakeTable) scan(ctx context.Context, params *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	f.scanInputs = append(f.scanInputs, params)
	f.mu.Unlock()

	if f.blockUntil {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	expr := resolve(params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err := f.scanErrs[expr]; err != nil {
		return nil, err
	}
	if out, ok := f.scans[expr]; ok {
		return out, nil
	}
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeTable) queryFn(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	f.queryInputs = append(f.queryInputs, params)
	f.mu.Unlock()

	if f.blockUntil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.query != nil {
		return f.query, nil
	}
	return &dynamodb.QueryOutput{}, nil
}

// seederAddress tem o formato gravado pelo gerador de dados de exemplo.
func seederAddress() *types.AttributeValueMemberM {
	return &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"line1":      &types.AttributeValueMemberS{Value: "742 Ocean Boulevard"},
		"line2":      &types.AttributeValueMemberNULL{Value: true},
		"city":       &types.AttributeValueMemberS{Value: "Dubai"},
		"state":      &types.AttributeValueMemberS{Value: "Dubai"},
		"country":    &types.AttributeValueMemberS{Value: "UAE"},
		"postalCode": &types.AttributeValueMemberS{Value: "10001"},
		"latitude":   &types.AttributeValueMemberN{Value: "25.197197"},
		"longitude":  &types.AttributeValueMemberN{Value: "55.274376"},
	}}
}

func marshalRecords(t *testing.T, recs ...Record) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(recs))
	for _, r := range recs {
		av, err := attributevalue.MarshalMap(r)
		require.NoError(t, err)
		items = append(items, av)
	}
	return items
}

func scanOut(t *testing.T, recs ...Record) *dynamodb.ScanOutput {
	items := marshalRecords(t, recs...)
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items)), ScannedCount: int32(len(items))}
}

func queryOut(t *testing.T, recs ...Record) *dynamodb.QueryOutput {
	items := marshalRecords(t, recs...)
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items)), ScannedCount: int32(len(items))}
}

func property(id, name, city, country string) Record {
	entity, key := "Property", LocationKey(city, country)
	return Record{
		PK:         "PROPERTY#" + id,
		SK:         "METADATA",
		EntityType: &entity,
		Name:       &name,
		Address:    map[string]any{"city": city, "country": country},
		GSI1PK:     &key,
	}
}

func properties(n int) []Record {
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, property(string(rune('a'+i)), "Hotel "+string(rune('A'+i)), "Dubai", "UAE"))
	}
	return out
}

// testConfig devolve os defaults sem ler o ambiente.
func testConfig() *config.ProbeConfig {
	return config.Default()
}

func resolve(expr *string, names map[string]string, values map[string]types.AttributeValue) string {
	if expr == nil {
		return ""
	}
	out := *expr

	nameKeys := make([]string, 0, len(names))
	for k := range names {
		nameKeys = append(nameKeys, k)
	}
	sort.Slice(nameKeys, func(i, j int) bool { return nameKeys[i] > nameKeys[j] })
	for _, k := range nameKeys {
		out = strings.ReplaceAll(out, k, names[k])
	}

	valueKeys := make([]string, 0, len(values))
	for k := range values {
		valueKeys = append(valueKeys, k)
	}
	sort.Slice(valueKeys, func(i, j int) bool { return valueKeys[i] > valueKeys[j] })
	for _, k := range valueKeys {
		if sv, ok := values[k].(*types.AttributeValueMemberS); ok {
			out = strings.ReplaceAll(out, k, `"`+sv.Value+`"`)
		}
	}
	return out
}
