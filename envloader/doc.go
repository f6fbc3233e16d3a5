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
//
// Package envloader carrega variáveis de ambiente para os campos de uma
// struct Go usando as tags `env` e `envDefault`.
//
// O carregamento é feito como uma sobreposição: uma variável definida sempre
// vence, enquanto `envDefault` só preenche campos que ainda estão com o valor
// zero. Assim é possível aplicar o `envloader` depois de um arquivo YAML sem
// apagar o que o arquivo definiu.
//
// Tipos suportados: string, int*, uint*, bool, float*, time.Duration e
// []string (separado por vírgulas), além de structs aninhadas e ponteiros
// para structs.
//
// Exemplo:
//
//	type Config struct {
//		Table   string        `env:"PROBE_TABLE_NAME"`
//		Timeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package envloader
