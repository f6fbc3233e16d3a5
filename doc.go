// Package ddbprobe reúne as ferramentas de diagnóstico de leitura para
// tabelas DynamoDB de propriedades.
//
// Visão Geral:
// O comando `cmd/ddbprobe` executa, em ordem fixa, cinco leituras
// independentes contra uma tabela e imprime os resultados para um operador:
//
//  1. raw-sample: um item qualquer, sem filtro, com a estrutura completa.
//  2. metadata-listing: até N itens com SK = METADATA.
//  3. location-index: Query no índice de localização por GSI1PK = CITY#<city>#<country>.
//  4. city-scan: Scan com EntityType = Property AND Address.city = <city>.
//  5. city-metadata-scan: o mesmo Scan exigindo também SK = METADATA.
//
// Sub-Pacotes Principais:
//   - dyndb: Store[T] somente leitura com QueryBuilder fluente.
//   - envloader: sobreposição de variáveis de ambiente em structs.
//   - pkg/config: configuração (defaults, YAML, ambiente, validação).
//   - pkg/probe: as probes, o Runner e o relatório.
//   - pkg/logger, pkg/metrics, pkg/observability: zerolog e DataDog.
package ddbprobe
