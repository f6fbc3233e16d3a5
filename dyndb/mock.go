// dyndb/mock.go
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrMockNotConfigured é devolvido quando a função correspondente do mock
// não foi definida.
var ErrMockNotConfigured = errors.New("dyndb: mock function not configured")

// MockDynamoClient é um mock para a interface DynamoDBClient de baixo nível.
//
// Permite testar quem consome o `Store` sem tocar no AWS SDK. Cada chamada
// é registrada em `Calls` na ordem em que acontece.
type MockDynamoClient struct {
	GetItemFn func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	QueryFn   func(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	ScanFn    func(ctx context.Context, params *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)

	Calls []string
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.Calls = append(m.Calls, "GetItem")
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, params)
	}
	return nil, ErrMockNotConfigured
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.Calls = append(m.Calls, "Query")
	if m.QueryFn != nil {
		return m.QueryFn(ctx, params)
	}
	return nil, ErrMockNotConfigured
}

func (m *MockDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.Calls = append(m.Calls, "Scan")
	if m.ScanFn != nil {
		return m.ScanFn(ctx, params)
	}
	return nil, ErrMockNotConfigured
}
