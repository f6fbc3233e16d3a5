// Package probe executa uma bateria fixa de leituras de diagnóstico contra
// uma tabela DynamoDB particionada e com índice secundário de localização.
//
// Cada probe é independente: uma falha vira um ProbeError no Result
// correspondente e o Runner segue para a próxima. A saída é texto para um
// operador humano, sem contrato de formato.
//
// Os contadores impressos refletem uma única página. No DynamoDB o Limit é
// aplicado aos itens examinados antes do FilterExpression, então "Found 0"
// pode significar apenas que a janela examinada não tinha correspondências.
// O runner imprime o ScannedCount e se há mais páginas, mas não segue a
// paginação.
package probe
