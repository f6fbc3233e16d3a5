// dyndb/store.go
package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/ddbprobe/envloader"
)

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig[T]
	// err guarda a falha de configuração; toda operação a devolve.
	err error
}

// New cria um store reutilizável. Campos vazios de cfg são completados a
// partir das variáveis de ambiente (DYNAMODB_*). Uma configuração inválida
// não derruba o chamador aqui: o erro volta na primeira operação.
func New[T any](client DynamoDBClient, cfg TableConfig[T]) Store[T] {
	s := &dynamoStore[T]{client: client}

	if cfg.TableName == "" || cfg.HashKey == "" {
		if err := envloader.Load(&cfg); err != nil {
			s.err = fmt.Errorf("dyndb: load table config: %w", err)
		}
	}
	if s.err == nil && cfg.TableName == "" {
		s.err = ErrNoTable
	}

	s.cfg = cfg
	return s
}

// Get item por chave primária
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	key := map[string]types.AttributeValue{
		s.cfg.HashKey: attr(hashKey),
	}
	if s.cfg.SortKey != "" && sortKey != nil {
		key[s.cfg.SortKey] = attr(sortKey)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("dyndb: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMapWithOptions(out.Item, &item, UseNumber); err != nil {
		return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
	}
	return &item, nil
}

// UseNumber mantém o texto exato dos atributos N decodificados em `any`
// (attributevalue.Number no lugar de float64).
func UseNumber(o *attributevalue.DecoderOptions) {
	o.UseNumber = true
}

// attr converte qualquer valor para types.AttributeValue
func attr(v any) types.AttributeValue {
	if v == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return av
}
