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

// Package dyndb fornece uma abstração genérica, fortemente tipada e somente
// leitura sobre o AWS DynamoDB Go SDK (v2).
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, que simplifica as leituras
// (`Get`, `Query` e `Scan`) sem expor os tipos de baixo nível do SDK
// (AttributeValue, expressões com placeholders, etc.).
//
// A principal característica é o `QueryBuilder[T]`, que permite construir
// consultas de forma fluente, abstraindo as Expression Builders do SDK.
// Caminhos aninhados (ex: "Address.city") são aceitos nos filtros.
//
// Funcionalidades Principais:
//   - Leitura tipada: `Get`, `Query` e `Scan` usando tipos Go nativos.
//   - Builder Fluente: `Query().Index(...).KeyEqual(...).FilterEqual(...).Limit(...)`.
//   - Páginas: `ExecPage` devolve `Count`, `ScannedCount` e o token da próxima página.
//   - Mocks Integrados: `MockDynamoClient` para testes unitários.
//
// Exemplo de Query Fluente:
//
//	results, token, err := store.Query().
//		Index("LocationIndex").
//		KeyEqual("GSI1PK", "CITY#Dubai#UAE").
//		FilterEqual("EntityType", "Property").
//		Limit(5).
//		Exec(context.Background())
//
// Atenção: no DynamoDB o `Limit` é aplicado aos itens examinados ANTES do
// filtro. Uma página com `Count == 0` e `HasMore() == true` não significa
// ausência de itens, apenas que nenhum item da janela examinada passou no
// filtro.
package dyndb
