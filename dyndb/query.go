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
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// === MÉTODOS FLUENTES ===

// Index direciona a leitura para um índice secundário.
func (qb *QueryBuilder[T]) Index(name string) *QueryBuilder[T] {
	qb.indexName = aws.String(name)
	return qb
}

// KeyEqual adiciona uma condição de igualdade na chave (pré-leitura).
func (qb *QueryBuilder[T]) KeyEqual(key string, value any) *QueryBuilder[T] {
	return qb.Apply(WithKeyCondition[T](expression.KeyEqual(expression.Key(key), expression.Value(value))))
}

// KeyBeginsWith restringe a sort key por prefixo. Deve ser combinado com
// um KeyEqual na hash key.
func (qb *QueryBuilder[T]) KeyBeginsWith(key string, prefix string) *QueryBuilder[T] {
	return qb.Apply(WithKeyCondition[T](expression.KeyBeginsWith(expression.Key(key), prefix)))
}

// FilterEqual adiciona um filtro de igualdade (pós-leitura). O campo pode
// ser um caminho aninhado como "Address.city".
func (qb *QueryBuilder[T]) FilterEqual(field string, value any) *QueryBuilder[T] {
	return qb.Apply(WithFilter[T](expression.Equal(expression.Name(field), expression.Value(value))))
}

// FilterContains filtra itens cujo atributo contém value (substring ou
// elemento de conjunto).
func (qb *QueryBuilder[T]) FilterContains(field string, value string) *QueryBuilder[T] {
	return qb.Apply(WithFilter[T](expression.Contains(expression.Name(field), value)))
}

func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	qb.limit = &n
	return qb
}

// LastKey retoma a leitura a partir de um token devolvido por Exec.
func (qb *QueryBuilder[T]) LastKey(token string) *QueryBuilder[T] {
	if token == "" {
		return qb
	}
	key, err := decodeToken(token)
	if err != nil {
		qb.err = err
		return qb
	}
	qb.lastKey = key
	return qb
}

// Apply aplica opções funcionais ao builder.
func (qb *QueryBuilder[T]) Apply(filters ...QueryFilter[T]) *QueryBuilder[T] {
	for _, f := range filters {
		f(qb)
	}
	return qb
}

// Query inicia uma Query
func (s *dynamoStore[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:       s,
		scanForward: aws.Bool(true),
		err:         s.err,
	}
}

// Scan inicia um Scan
func (s *dynamoStore[T]) Scan() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:  s,
		isScan: true,
		err:    s.err,
	}
}

func WithKeyCondition[T any](cond expression.KeyConditionBuilder) QueryFilter[T] {
	return func(qb *QueryBuilder[T]) {
		if qb.keyCond == nil {
			qb.keyCond = &cond
		} else {
			tmp := qb.keyCond.And(cond)
			qb.keyCond = &tmp
		}
	}
}

func WithFilter[T any](cond expression.ConditionBuilder) QueryFilter[T] {
	return func(qb *QueryBuilder[T]) {
		if qb.filterCond == nil {
			qb.filterCond = &cond
		} else {
			tmp := qb.filterCond.And(cond)
			qb.filterCond = &tmp
		}
	}
}

func WithIndex[T any](name string) QueryFilter[T] {
	return func(qb *QueryBuilder[T]) {
		qb.indexName = aws.String(name)
	}
}

func WithLimit[T any](n int32) QueryFilter[T] {
	return func(qb *QueryBuilder[T]) {
		qb.limit = &n
	}
}

// Exec executa a consulta e devolve os itens e o token da próxima página.
func (qb *QueryBuilder[T]) Exec(ctx context.Context) ([]T, string, error) {
	page, err := qb.ExecPage(ctx)
	if err != nil {
		return nil, "", err
	}
	return page.Items, page.NextToken, nil
}

// ExecPage executa uma única chamada (sem seguir a paginação).
func (qb *QueryBuilder[T]) ExecPage(ctx context.Context) (*Page[T], error) {
	if qb.err != nil {
		return nil, qb.err
	}

	expr, err := qb.build()
	if err != nil {
		return nil, err
	}

	if qb.isScan || qb.keyCond == nil {
		return qb.execScan(ctx, expr)
	}
	return qb.execQuery(ctx, expr)
}

func (qb *QueryBuilder[T]) build() (expression.Expression, error) {
	keyCond := qb.keyCond
	if qb.isScan {
		// Scan não aceita KeyConditionExpression
		keyCond = nil
	}

	// Builder vazio falha no Build(); um Scan sem filtro é válido.
	if keyCond == nil && qb.filterCond == nil {
		return expression.Expression{}, nil
	}

	builder := expression.NewBuilder()
	if keyCond != nil {
		builder = builder.WithKeyCondition(*keyCond)
	}
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
	}

	expr, err := builder.Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("dyndb: invalid expression: %w", err)
	}
	return expr, nil
}

func (qb *QueryBuilder[T]) execQuery(ctx context.Context, expr expression.Expression) (*Page[T], error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		IndexName:                 qb.indexName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ScanIndexForward:          qb.scanForward,
		ExclusiveStartKey:         qb.lastKey,
	}

	out, err := qb.store.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("dyndb: query failed: %w", err)
	}
	return qb.unmarshalPage(out.Items, out.Count, out.ScannedCount, out.LastEvaluatedKey)
}

func (qb *QueryBuilder[T]) execScan(ctx context.Context, expr expression.Expression) (*Page[T], error) {
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		IndexName:                 qb.indexName,
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ExclusiveStartKey:         qb.lastKey,
	}

	out, err := qb.store.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("dyndb: scan failed: %w", err)
	}
	return qb.unmarshalPage(out.Items, out.Count, out.ScannedCount, out.LastEvaluatedKey)
}

func (qb *QueryBuilder[T]) unmarshalPage(
	items []map[string]types.AttributeValue,
	count, scanned int32,
	lastKey map[string]types.AttributeValue,
) (*Page[T], error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := attributevalue.UnmarshalMapWithOptions(item, &t, UseNumber); err != nil {
			return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
		}
		result = append(result, t)
	}

	token, err := encodeToken(lastKey)
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:        result,
		Count:        count,
		ScannedCount: scanned,
		NextToken:    token,
	}, nil
}

// tokenAttr é a forma serializável de um atributo de chave. Chaves do
// DynamoDB só admitem S, N e B; N segue como texto para não perder dígitos.
type tokenAttr struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// encodeToken converte o LastEvaluatedKey em um token Base64 opaco.
func encodeToken(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}
	plain := make(map[string]tokenAttr, len(lastKey))
	for name, av := range lastKey {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			plain[name] = tokenAttr{S: aws.String(v.Value)}
		case *types.AttributeValueMemberN:
			plain[name] = tokenAttr{N: aws.String(v.Value)}
		case *types.AttributeValueMemberB:
			plain[name] = tokenAttr{B: v.Value}
		default:
			return "", fmt.Errorf("dyndb: encode token: unsupported key type %T for %q", av, name)
		}
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("dyndb: encode token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func decodeToken(token string) (map[string]types.AttributeValue, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("dyndb: invalid token: %w", err)
	}
	var plain map[string]tokenAttr
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("dyndb: invalid token: %w", err)
	}
	if len(plain) == 0 {
		return nil, fmt.Errorf("dyndb: invalid token: empty key")
	}
	key := make(map[string]types.AttributeValue, len(plain))
	for name, a := range plain {
		switch {
		case a.S != nil:
			key[name] = &types.AttributeValueMemberS{Value: *a.S}
		case a.N != nil:
			key[name] = &types.AttributeValueMemberN{Value: *a.N}
		case a.B != nil:
			key[name] = &types.AttributeValueMemberB{Value: a.B}
		default:
			return nil, fmt.Errorf("dyndb: invalid token: attribute %q has no value", name)
		}
	}
	return key, nil
}
