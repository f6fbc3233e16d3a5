// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dyndb_test

import (
	"context"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/ddbprobe/dyndb"
	"github.com/stretchr/testify/mock"
)

// MockDynamoClient é um mock para a interface DynamoDBClient
type MockDynamoClient struct {
	mock.Mock
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func (m *MockDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.ScanOutput), args.Error(1)
}

// TestAddress é o mapa aninhado usado nos filtros por caminho
type TestAddress struct {
	City    string `dynamodbav:"city"`
	Country string `dynamodbav:"country"`
}

// TestItem é uma estrutura de teste com chave composta
type TestItem struct {
	PK         string       `dynamodbav:"PK"`
	SK         string       `dynamodbav:"SK"`
	EntityType string       `dynamodbav:"EntityType"`
	Address    *TestAddress `dynamodbav:"Address,omitempty"`
}

// helper function para criar store de teste
func createTestStore(client dyndb.DynamoDBClient) dyndb.Store[TestItem] {
	cfg := dyndb.TableConfig[TestItem]{
		TableName: "test-table",
		HashKey:   "PK",
		SortKey:   "SK",
	}
	return dyndb.New(client, cfg)
}

func s(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// resolve substitui os placeholders (#0, :0) de uma expressão pelos nomes e
// valores reais, para que os testes comparem a expressão legível.
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
