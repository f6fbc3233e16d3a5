package probe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/ddbprobe/dyndb"
)

// Absent é impresso no lugar de atributos que não existem no item.
const Absent = "<absent>"

// Nomes dos atributos lidos pelas probes. Caminhos aninhados usam ponto.
const (
	AttrHashKey     = "PK"
	AttrSortKey     = "SK"
	AttrEntityType  = "EntityType"
	AttrName        = "Name"
	AttrAddress     = "Address"
	AttrCity        = AttrAddress + "." + addressCity
	AttrCountry     = AttrAddress + "." + addressCountry
	AttrLocationKey = "GSI1PK"
)

const (
	locationPrefix = "CITY"
	addressCity    = "city"
	addressCountry = "country"
)

// LocationKey monta a chave do índice de localização: CITY#<city>#<country>.
func LocationKey(city, country string) string {
	return strings.Join([]string{locationPrefix, city, country}, "#")
}

// Field é um valor opcional lido de um item.
type Field struct {
	Value   string
	Present bool
}

func present(v string) Field { return Field{Value: v, Present: true} }

// fromString trata string vazia como ausente.
func fromString(v string) Field {
	if v == "" {
		return Field{}
	}
	return present(v)
}

func fromPtr(v *string) Field {
	if v == nil {
		return Field{}
	}
	return present(*v)
}

func (f Field) String() string {
	if !f.Present {
		return Absent
	}
	return f.Value
}

// Record é a visão de um item da tabela. PK+SK identificam o item; os
// demais atributos podem faltar. Address guarda o valor gravado sem
// conversão (normalmente map[string]any), com todas as chaves originais.
type Record struct {
	PK         string  `dynamodbav:"PK"`
	SK         string  `dynamodbav:"SK"`
	EntityType *string `dynamodbav:"EntityType,omitempty"`
	Name       *string `dynamodbav:"Name,omitempty"`
	Address    any     `dynamodbav:"Address,omitempty"`
	GSI1PK     *string `dynamodbav:"GSI1PK,omitempty"`
}

// UnmarshalDynamoDBAttributeValue lê o item casando nomes com a caixa
// exata. O decoder padrão aceita "name" ou "ADDRESS" como Name e Address,
// mas as expressões do DynamoDB não.
func (r *Record) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return fmt.Errorf("probe: item must be a map, got %T", av)
	}

	var rec Record
	text := func(name string) (*string, error) {
		v, err := attrText(m.Value[name])
		if err != nil {
			return nil, fmt.Errorf("probe: decode %s: %w", name, err)
		}
		return v, nil
	}

	var err error
	var pk, sk *string
	if pk, err = text(AttrHashKey); err != nil {
		return err
	}
	if sk, err = text(AttrSortKey); err != nil {
		return err
	}
	if rec.EntityType, err = text(AttrEntityType); err != nil {
		return err
	}
	if rec.Name, err = text(AttrName); err != nil {
		return err
	}
	if rec.GSI1PK, err = text(AttrLocationKey); err != nil {
		return err
	}
	if pk != nil {
		rec.PK = *pk
	}
	if sk != nil {
		rec.SK = *sk
	}

	if addr, ok := m.Value[AttrAddress]; ok {
		if err := attributevalue.UnmarshalWithOptions(addr, &rec.Address, dyndb.UseNumber); err != nil {
			return fmt.Errorf("probe: decode %s: %w", AttrAddress, err)
		}
	}

	*r = rec
	return nil
}

// attrText devolve o texto de um atributo escalar. Tipos compostos viram
// JSON para que nada seja omitido.
func attrText(av types.AttributeValue) (*string, error) {
	switch v := av.(type) {
	case nil, *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberS:
		return &v.Value, nil
	case *types.AttributeValueMemberN:
		return &v.Value, nil
	}

	var decoded any
	if err := attributevalue.UnmarshalWithOptions(av, &decoded, dyndb.UseNumber); err != nil {
		return nil, err
	}
	b, err := json.Marshal(jsonValue(decoded))
	if err != nil {
		return nil, err
	}
	text := string(b)
	return &text, nil
}

// jsonValue troca attributevalue.Number por json.Number, preservando o
// texto original do número na saída JSON.
func jsonValue(v any) any {
	switch tv := v.(type) {
	case attributevalue.Number:
		return json.Number(tv)
	case []attributevalue.Number:
		out := make([]json.Number, len(tv))
		for i, n := range tv {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = jsonValue(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = jsonValue(e)
		}
		return out
	}
	return v
}

// Field devolve o atributo indicado por path ("PK", "Address.city", ...).
// Caminhos desconhecidos são sempre ausentes.
func (r Record) Field(path string) Field {
	switch path {
	case AttrHashKey:
		return fromString(r.PK)
	case AttrSortKey:
		return fromString(r.SK)
	case AttrEntityType:
		return fromPtr(r.EntityType)
	case AttrName:
		return fromPtr(r.Name)
	case AttrLocationKey:
		return fromPtr(r.GSI1PK)
	case AttrCity:
		return r.addressKey(addressCity)
	case AttrCountry:
		return r.addressKey(addressCountry)
	}
	return Field{}
}

// addressKey lê uma chave do Address com a caixa exata: "City" não é
// "city", assim como no filtro Address.city.
func (r Record) addressKey(key string) Field {
	m, ok := r.Address.(map[string]any)
	if !ok {
		return Field{}
	}
	v, ok := m[key]
	if !ok || v == nil {
		return Field{}
	}
	if s, ok := v.(string); ok {
		return present(s)
	}
	return present(fmt.Sprint(v))
}

// City e Country são atalhos para Address.city e Address.country.
func (r Record) City() Field    { return r.Field(AttrCity) }
func (r Record) Country() Field { return r.Field(AttrCountry) }

// ExpectedGSI1PK deriva a chave de localização a partir do Address. Fica
// ausente quando city ou country faltam.
func (r Record) ExpectedGSI1PK() Field {
	city, country := r.City(), r.Country()
	if !city.Present || !country.Present {
		return Field{}
	}
	return present(LocationKey(city.Value, country.Value))
}

// LocationKeyConsistent indica se o GSI1PK gravado bate com o Address.
// Itens sem Address ou sem GSI1PK não são considerados inconsistentes.
func (r Record) LocationKeyConsistent() bool {
	expected, actual := r.ExpectedGSI1PK(), r.Field(AttrLocationKey)
	if !expected.Present || !actual.Present {
		return true
	}
	return expected.Value == actual.Value
}
