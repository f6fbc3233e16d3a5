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
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNotFound – erro padrão retornado quando uma operação GetItem
// não encontra o item.
var ErrNotFound = errors.New("dyndb: item not found")

// ErrNoTable é devolvido pelas operações de um store criado sem nome de
// tabela (nem na config, nem em DYNAMODB_TABLE_NAME).
var ErrNoTable = errors.New("dyndb: table name is required")

// DynamoDBClient interface para abstrair o cliente DynamoDB do SDK da AWS.
//
// Apenas as operações de leitura são necessárias. O `*dynamodb.Client`
// satisfaz esta interface.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store — interface principal e genérica para ler uma tabela DynamoDB.
//
// O tipo genérico `T` é a struct Go que representa o item da tabela.
// Usar `map[string]any` como `T` preserva a estrutura bruta do item.
type Store[T any] interface {
	// Get item por chave primária (hashKey e sortKey opcional).
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)

	// Query e Scan retornam QueryBuilder[T]
	Query() *QueryBuilder[T]
	Scan() *QueryBuilder[T]
}

// TableConfig — configuração da tabela
type TableConfig[T any] struct {
	TableName string `env:"DYNAMODB_TABLE_NAME"`
	HashKey   string `env:"DYNAMODB_HASH_KEY" envDefault:"PK"`
	SortKey   string `env:"DYNAMODB_SORT_KEY" envDefault:"SK"` // opcional
}

// Page é o resultado de uma única chamada Query/Scan.
type Page[T any] struct {
	Items []T
	// Count é o número de itens que passaram no filtro.
	Count int32
	// ScannedCount é o número de itens examinados antes do filtro.
	ScannedCount int32
	// NextToken é vazio quando não há mais páginas.
	NextToken string
}

// HasMore indica se o DynamoDB devolveu LastEvaluatedKey.
func (p *Page[T]) HasMore() bool {
	return p.NextToken != ""
}

// QueryFilter — opção funcional aplicada sobre o builder
type QueryFilter[T any] func(*QueryBuilder[T])

// QueryBuilder — o builder fluente
type QueryBuilder[T any] struct {
	store       *dynamoStore[T]
	keyCond     *expression.KeyConditionBuilder
	filterCond  *expression.ConditionBuilder
	indexName   *string
	limit       *int32
	lastKey     map[string]types.AttributeValue
	scanForward *bool
	isScan      bool
	err         error
}
